package eticket_test

const formatAReceipt = `From: notificaciones@kiusys.com
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

TERMS AND CONDITIONS / TERMINOS Y CONDICIONES
Carriage is subject to the conditions of contract.
`

const formatBReceipt = `Electronic Ticket Receipt
Prepared For
GARCIA/MARIA ELENA (LIMA PERU)
Reservation Code: XKJ7PQ
Ticket Number: 5442100000001
Issuing Airline: LATAM AIRLINES GROUP
Issuing Agent: LIMAGT01
Issue Date: 10 Jan 2025

Itinerary Details
12 Feb 2025
LATAM AIRLINES GROUP
LA 2401
Lima, Peru
Cusco, Peru
10:30
11:45
Cabin: Economy
Baggage Allowance: 1PC
Operated by: LATAM Airlines Peru

Departure: 12 Feb 2025
LATAM AIRLINES GROUP
LA 2022
Cusco, Peru
Arequipa, Peru
13:15
14:20
Cabin: Economy
Baggage Allowance: 1PC

Fare and Payment Details
Fare: USD 200.00
Taxes: USD 49.99
Total: USD 250.00
`

// formatBHeaderOnly carries the receipt fields in plain text while the
// flights are only in the HTML <pre> block.
const formatBHeaderOnly = `Electronic Ticket Receipt
Prepared For
TORRES/ANA
Reservation Code: QWERTY
Ticket Number: 5442100000002
Issue Date: 03 Mar 2025
Fare: PEN 300.00
Total: PEN 410.50
`

const formatBHTML = `<html><body>
<h1>Electronic Ticket Receipt</h1>
<p>Reservation Code: QWERTY</p>
<pre>
Itinerary Details
03 Mar 2025
SKY AIRLINE PERU
H2 5012
Lima, Peru
Arequipa, Peru
23:30
01:05
Cabin: Economy
</pre>
</body></html>`

const unrecognizedDocument = `Dear customer,
thank you for your hotel booking in Cusco.
Check-in: 12 Feb 2025
`
