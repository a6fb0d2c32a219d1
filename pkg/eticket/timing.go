package eticket

import "time"

const minutesPerDay = 24 * 60

// InferArrivalDate assumes a flight lands the same day unless the arrival
// clock time is earlier than the departure, in which case it lands the next
// day. Flights longer than a day or crossing the date line backwards are not
// modelled.
func InferArrivalDate(departureDate time.Time, departure, arrival ClockTime) time.Time {
	if arrival.Minutes() >= departure.Minutes() {
		return departureDate
	}
	return departureDate.AddDate(0, 0, 1)
}

func at(date time.Time, c ClockTime) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

// ComputeTimings returns a copy of segments with 1-based indexes, inferred
// arrival dates, durations and layovers filled in.
func ComputeTimings(segments []FlightSegment) []FlightSegment {
	out := make([]FlightSegment, len(segments))
	for i, seg := range segments {
		seg.Index = i + 1
		if seg.ArrivalDate == nil && seg.DepartureDate != nil && seg.DepartureTime != nil && seg.ArrivalTime != nil {
			seg.ArrivalDate = datePtr(InferArrivalDate(*seg.DepartureDate, *seg.DepartureTime, *seg.ArrivalTime))
			seg.ArrivalDateInferred = true
		}
		seg.DurationMinutes = duration(seg)
		seg.LayoverMinutes = nil
		if i > 0 {
			seg.LayoverMinutes = layover(out[i-1], seg)
		}
		out[i] = seg
	}
	return out
}

func duration(seg FlightSegment) *int64 {
	if seg.DepartureTime == nil || seg.ArrivalTime == nil {
		return nil
	}
	if seg.DepartureDate != nil && seg.ArrivalDate != nil {
		d := at(*seg.ArrivalDate, *seg.ArrivalTime).Sub(at(*seg.DepartureDate, *seg.DepartureTime))
		if d < 0 {
			return nil
		}
		return int64Ptr(int64(d / time.Minute))
	}
	return int64Ptr(int64(wrapMinutes(seg.ArrivalTime.Minutes() - seg.DepartureTime.Minutes())))
}

func layover(prev, cur FlightSegment) *int64 {
	if prev.ArrivalTime == nil || cur.DepartureTime == nil {
		return nil
	}
	if prev.ArrivalDate != nil && cur.DepartureDate != nil {
		d := at(*cur.DepartureDate, *cur.DepartureTime).Sub(at(*prev.ArrivalDate, *prev.ArrivalTime))
		if d < 0 {
			return nil
		}
		return int64Ptr(int64(d / time.Minute))
	}
	// Without dates the connection is taken as same-day; a departure earlier
	// than the previous arrival means the next day.
	return int64Ptr(int64(wrapMinutes(cur.DepartureTime.Minutes() - prev.ArrivalTime.Minutes())))
}

func wrapMinutes(diff int) int {
	if diff < 0 {
		return diff + minutesPerDay
	}
	return diff
}
