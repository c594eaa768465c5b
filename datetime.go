package tdsvalue

import (
	"time"
)

// Temporal is a decoded date/time value. Time is truncated to the
// millisecond; the part of the value below one millisecond, which only
// time, datetime2 and datetimeoffset can carry, is kept in SubMillisecond.
type Temporal struct {
	Time           time.Time
	SubMillisecond time.Duration

	// Offset is the datetimeoffset zone offset in minutes as sent by the
	// server. It is not applied to Time, which is always UTC for
	// datetimeoffset values.
	Offset    int16
	HasOffset bool
}

// Precise returns the instant including the sub-millisecond remainder.
func (t Temporal) Precise() time.Time {
	return t.Time.Add(t.SubMillisecond)
}

// InOffset returns the precise instant expressed in the transmitted zone
// offset. Values without an offset are returned unchanged.
func (t Temporal) InOffset() time.Time {
	if !t.HasOffset {
		return t.Precise()
	}
	return t.Precise().In(time.FixedZone("", int(t.Offset)*60))
}

const (
	// days between 0001-01-01 and 2000-01-01 minus one, so that the
	// day count lands on a 2000-01-01 based day-of-month
	dateEpochAdjust = 730118

	ticksPerMillisecond = 10000
	timeTick            = 100 * time.Nanosecond
)

func location(useUTC bool) *time.Location {
	if useUTC {
		return time.UTC
	}
	return time.Local
}

// smalldatetime: days since 1900-01-01 and minutes since midnight
func decodeSmallDateTime(c *Cursor, useUTC bool) (Value, error) {
	days, err := c.ReadUint16LE()
	if err != nil {
		return Value{}, err
	}
	minutes, err := c.ReadUint16LE()
	if err != nil {
		return Value{}, err
	}
	t := time.Date(1900, time.January, 1+int(days), 0, int(minutes), 0, 0, location(useUTC))
	return TimeValue(Temporal{Time: t}), nil
}

// datetime: signed days since 1900-01-01 and 1/300 second ticks since midnight
func decodeDateTime(c *Cursor, useUTC bool) (Value, error) {
	days, err := c.ReadInt32LE()
	if err != nil {
		return Value{}, err
	}
	ticks, err := c.ReadUint32LE()
	if err != nil {
		return Value{}, err
	}
	// round(ticks * 10 / 3); the fraction is always 0, 1/3 or 2/3
	ms := (int64(ticks)*10 + 1) / 3
	sec, nsec := splitMilliseconds(ms)
	t := time.Date(1900, time.January, 1+int(days), 0, 0, sec, nsec, location(useUTC))
	return TimeValue(Temporal{Time: t}), nil
}

// readTimeTicks reads a time field of width bytes and returns it in 100ns
// units regardless of scale.
func readTimeTicks(c *Cursor, width int, scale uint8) (uint64, error) {
	if scale > 7 {
		return 0, streamErrorf("unsupported time scale %d", scale)
	}
	var ticks uint64
	switch width {
	case 3:
		v, err := c.ReadUint24LE()
		if err != nil {
			return 0, err
		}
		ticks = uint64(v)
	case 4:
		v, err := c.ReadUint32LE()
		if err != nil {
			return 0, err
		}
		ticks = uint64(v)
	case 5:
		v, err := c.ReadUint40LE()
		if err != nil {
			return 0, err
		}
		ticks = v
	default:
		return 0, streamErrorf("unsupported time dataLength %d", width)
	}
	for i := scale; i < 7; i++ {
		ticks *= 10
	}
	return ticks, nil
}

func splitTicks(ticks uint64) (ms int64, sub time.Duration) {
	return int64(ticks / ticksPerMillisecond), time.Duration(ticks%ticksPerMillisecond) * timeTick
}

func splitMilliseconds(ms int64) (sec, nsec int) {
	return int(ms / 1000), int(ms%1000) * int(time.Millisecond)
}

func decodeTime(c *Cursor, width int, scale uint8, useUTC bool) (Value, error) {
	ticks, err := readTimeTicks(c, width, scale)
	if err != nil {
		return Value{}, err
	}
	ms, sub := splitTicks(ticks)
	sec, nsec := splitMilliseconds(ms)
	t := time.Date(1970, time.January, 1, 0, 0, sec, nsec, location(useUTC))
	return TimeValue(Temporal{Time: t, SubMillisecond: sub}), nil
}

// dateFromDays turns a day count since 0001-01-01 into a calendar date at
// midnight plus ms milliseconds.
func dateFromDays(days uint32, ms int64, loc *time.Location) time.Time {
	sec, nsec := splitMilliseconds(ms)
	return time.Date(2000, time.January, int(days)-dateEpochAdjust, 0, 0, sec, nsec, loc)
}

func decodeDate(c *Cursor, useUTC bool) (Value, error) {
	days, err := c.ReadUint24LE()
	if err != nil {
		return Value{}, err
	}
	return TimeValue(Temporal{Time: dateFromDays(days, 0, location(useUTC))}), nil
}

// datetime2: a time field of dataLength-3 bytes followed by a date
func decodeDateTime2(c *Cursor, dataLength int, scale uint8, useUTC bool) (Value, error) {
	ticks, err := readTimeTicks(c, dataLength-3, scale)
	if err != nil {
		return Value{}, err
	}
	days, err := c.ReadUint24LE()
	if err != nil {
		return Value{}, err
	}
	ms, sub := splitTicks(ticks)
	return TimeValue(Temporal{Time: dateFromDays(days, ms, location(useUTC)), SubMillisecond: sub}), nil
}

// datetimeoffset: a UTC time field of dataLength-5 bytes, a date and a
// signed offset in minutes
func decodeDateTimeOffset(c *Cursor, dataLength int, scale uint8) (Value, error) {
	ticks, err := readTimeTicks(c, dataLength-5, scale)
	if err != nil {
		return Value{}, err
	}
	days, err := c.ReadUint24LE()
	if err != nil {
		return Value{}, err
	}
	offset, err := c.ReadInt16LE()
	if err != nil {
		return Value{}, err
	}
	ms, sub := splitTicks(ticks)
	return TimeValue(Temporal{
		Time:           dateFromDays(days, ms, time.UTC),
		SubMillisecond: sub,
		Offset:         offset,
		HasOffset:      true,
	}), nil
}
