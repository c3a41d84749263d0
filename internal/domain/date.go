package domain

import (
	"fmt"
	"time"
)

// DateLayout формат обмена датами на всех границах сервиса
const DateLayout = "2006-01-02"

// Date представляет календарную дату без компонента времени.
// Используется для даты регистрации клиента и даты заказа.
type Date struct {
	time.Time
}

// NewDate создает дату, отбрасывая время
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today возвращает сегодняшнюю дату
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate разбирает дату из строки формата ГГГГ-ММ-ДД
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected format %s", s, DateLayout)
	}
	return Date{t}, nil
}

// String возвращает дату в формате ГГГГ-ММ-ДД
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Equal сравнивает две даты
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON сериализует дату как строку ГГГГ-ММ-ДД
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON разбирает дату из строки ГГГГ-ММ-ДД
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal: %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
