package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Time 统一时间格式的 time.Time 包装
type Time time.Time

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", time.Time(t).Format(timeLayout))), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+timeLayout+`"`, string(data), time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

func (t Time) Value() (driver.Value, error) {
	return time.Time(t), nil
}

func (t *Time) Scan(v any) error {
	value, ok := v.(time.Time)
	if !ok {
		return fmt.Errorf("models: cannot scan %v into models.Time", v)
	}
	*t = Time(value)
	return nil
}

func (t Time) Std() time.Time {
	return time.Time(t)
}
