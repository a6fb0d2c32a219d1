package eticket_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eticket-service/pkg/eticket"
)

func clock(h, m int) *eticket.ClockTime {
	return &eticket.ClockTime{Hour: h, Minute: m}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestInferArrivalDate(t *testing.T) {
	dep := *day(2025, time.January, 20)

	assert.Equal(t, dep, eticket.InferArrivalDate(dep, *clock(7, 30), *clock(9, 45)))
	assert.Equal(t, dep, eticket.InferArrivalDate(dep, *clock(9, 45), *clock(9, 45)))
	assert.Equal(t, *day(2025, time.January, 21), eticket.InferArrivalDate(dep, *clock(23, 30), *clock(5, 50)))
	assert.Equal(t, *day(2025, time.January, 1), eticket.InferArrivalDate(*day(2024, time.December, 31), *clock(22, 0), *clock(1, 0)))
}

func TestComputeTimings_DurationAcrossMidnight(t *testing.T) {
	t.Run("without dates", func(t *testing.T) {
		segs := eticket.ComputeTimings([]eticket.FlightSegment{
			{DepartureTime: clock(23, 30), ArrivalTime: clock(5, 50)},
		})
		require.NotNil(t, segs[0].DurationMinutes)
		assert.Equal(t, int64(380), *segs[0].DurationMinutes)
		assert.Nil(t, segs[0].ArrivalDate)
	})

	t.Run("with departure date", func(t *testing.T) {
		segs := eticket.ComputeTimings([]eticket.FlightSegment{
			{DepartureDate: day(2025, time.January, 20), DepartureTime: clock(23, 30), ArrivalTime: clock(5, 50)},
		})
		require.NotNil(t, segs[0].DurationMinutes)
		assert.Equal(t, int64(380), *segs[0].DurationMinutes)
		assert.Equal(t, day(2025, time.January, 21), segs[0].ArrivalDate)
		assert.True(t, segs[0].ArrivalDateInferred)
	})
}

func TestComputeTimings_Layover(t *testing.T) {
	tests := []struct {
		name   string
		first  eticket.FlightSegment
		second eticket.FlightSegment
		want   *int64
	}{
		{
			name:   "same day without dates",
			first:  eticket.FlightSegment{DepartureTime: clock(8, 0), ArrivalTime: clock(10, 30)},
			second: eticket.FlightSegment{DepartureTime: clock(12, 0), ArrivalTime: clock(14, 0)},
			want:   int64Ptr(90),
		},
		{
			name:   "same day with dates",
			first:  eticket.FlightSegment{DepartureDate: day(2025, 2, 12), DepartureTime: clock(8, 0), ArrivalTime: clock(10, 30)},
			second: eticket.FlightSegment{DepartureDate: day(2025, 2, 12), DepartureTime: clock(12, 0), ArrivalTime: clock(14, 0)},
			want:   int64Ptr(90),
		},
		{
			name:   "overnight connection without dates",
			first:  eticket.FlightSegment{DepartureTime: clock(18, 0), ArrivalTime: clock(22, 0)},
			second: eticket.FlightSegment{DepartureTime: clock(6, 0), ArrivalTime: clock(8, 0)},
			want:   int64Ptr(480),
		},
		{
			name:   "multi day stop with dates",
			first:  eticket.FlightSegment{DepartureDate: day(2025, 2, 12), DepartureTime: clock(8, 0), ArrivalTime: clock(10, 0)},
			second: eticket.FlightSegment{DepartureDate: day(2025, 2, 14), DepartureTime: clock(10, 0), ArrivalTime: clock(12, 0)},
			want:   int64Ptr(2880),
		},
		{
			name:   "departure before previous arrival",
			first:  eticket.FlightSegment{DepartureDate: day(2025, 2, 12), DepartureTime: clock(8, 0), ArrivalTime: clock(10, 0)},
			second: eticket.FlightSegment{DepartureDate: day(2025, 2, 11), DepartureTime: clock(10, 0)},
			want:   nil,
		},
		{
			name:   "missing previous arrival",
			first:  eticket.FlightSegment{DepartureTime: clock(8, 0)},
			second: eticket.FlightSegment{DepartureTime: clock(12, 0)},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := eticket.ComputeTimings([]eticket.FlightSegment{tt.first, tt.second})
			require.Len(t, segs, 2)
			assert.Nil(t, segs[0].LayoverMinutes)
			assert.Equal(t, tt.want, segs[1].LayoverMinutes)
			assert.Equal(t, 1, segs[0].Index)
			assert.Equal(t, 2, segs[1].Index)
		})
	}
}

func TestComputeTimings_DoesNotMutateInput(t *testing.T) {
	in := []eticket.FlightSegment{{DepartureDate: day(2025, 1, 20), DepartureTime: clock(7, 30), ArrivalTime: clock(9, 45)}}

	out := eticket.ComputeTimings(in)

	assert.Nil(t, in[0].ArrivalDate)
	assert.Nil(t, in[0].DurationMinutes)
	assert.NotNil(t, out[0].ArrivalDate)
}

func int64Ptr(v int64) *int64 {
	return &v
}
