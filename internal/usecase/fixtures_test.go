package usecase_test

import (
	"github.com/prometheus/client_golang/prometheus"

	"eticket-service/internal/domain/entity"
	"eticket-service/pkg/eticket"
	"eticket-service/pkg/metrics"
)

const ticketBody = `From: notificaciones@kiusys.com
PASSENGER ITINERARY RECEIPT / RECIBO DE ITINERARIO DEL PASAJERO

ISSUE AGENT / AGENTE EMISOR: CCS00TRV
ISSUE DATE / FECHA DE EMISION: 15ENE25
ISSUING AIRLINE / LINEA AEREA EMISORA: ESTELAR
BOOKING REF. / CODIGO DE RESERVA: C1/ABC123
TICKET NUMBER / NUMERO DE BOLETO: 308 2345678901
NAME / NOMBRE: PEREZ/JOSE CIUDAD DE PANAMA PANAMA

FROM/TO   FLIGHT   CL  DATE     DEP    ARR    STATUS  BAG
CCS PTY V0 3050 Y 20ENE25 07:30 09:45 OK 1PC
PTY MIA CM 0420 Y 20ENE25 11:15 15:05 OK 1PC

AIR FARE / TARIFA: USD 200.00
TAX / IMPUESTOS: USD 49.99
TOTAL: USD 250.00
`

func ticketEmail(id string) *entity.Email {
	return &entity.Email{
		EmailID: id,
		Subject: "Your e-ticket receipt",
		Body:    ticketBody,
	}
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetricsWithRegistry("eticket_test", prometheus.NewRegistry())
}

func newTestParser() *eticket.Parser {
	return eticket.NewParser(eticket.DefaultConfig())
}
