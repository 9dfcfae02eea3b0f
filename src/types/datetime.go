package types

import (
	"database/sql/driver"
	"dropzone/src/config"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04:05.999999999", config.CLOCK_TIME_FORMAT, "15:04"}

// Date is a calendar day stored in a DATE column.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(config.DATE_FORMAT, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(config.DATE_FORMAT)
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}

func (d *Date) scanString(s string) error {
	if len(s) > len(config.DATE_FORMAT) {
		s = s[:len(config.DATE_FORMAT)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a time of day stored in a TIME column.
type ClockTime struct {
	time.Time
}

// ParseClockTime accepts HH:MM and HH:MM:SS with optional fractional seconds.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return ClockTime{t}, nil
		}
		lastErr = err
	}
	return ClockTime{}, lastErr
}

func (c ClockTime) String() string {
	return c.Format(config.CLOCK_TIME_FORMAT)
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *ClockTime) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		c.Time = time.Date(0, 1, 1, v.Hour(), v.Minute(), v.Second(), 0, time.UTC)
		return nil
	case string:
		return c.scanString(v)
	case []byte:
		return c.scanString(string(v))
	}
	return fmt.Errorf("cannot scan %T into ClockTime", value)
}

func (c *ClockTime) scanString(s string) error {
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
