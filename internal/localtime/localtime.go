package localtime

import (
	"errors"
	"fmt"
	"time"

	// Встроенная база таймзон: LoadLocation работает и там, где
	// у хоста нет каталога zoneinfo (минимальные контейнеры).
	_ "time/tzdata"
)

// Форматы пользовательского ввода.
const (
	// DateLayout — дата "на стене".
	DateLayout = "2006-01-02"

	// ClockLayout — время "на стене", минутное разрешение.
	ClockLayout = "15:04"
)

// UTCZone — жёсткий последний фолбэк цепочки Resolve.
const UTCZone = "UTC"

// Ошибки валидации пользовательского ввода. Обе всплывают к вызывающему
// сразу, расписание при них не создаётся.
var (
	// ErrInvalidTimezone — идентификатор не является известной IANA-зоной.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidDateTime — дата/время не парсятся.
	ErrInvalidDateTime = errors.New("invalid date/time")
)

// Normalize переводит локальные дату и время в заданной таймзоне
// в канонический момент: UTC, усечённый до минуты.
func Normalize(date, clock, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}

	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
	}

	return t.UTC().Truncate(time.Minute), nil
}

// Denormalize — обратная конвертация для отображения: канонический
// момент → (дата, время) в заданной таймзоне. Для любого валидного
// ввода Denormalize(Normalize(d, c, z), z) == (d, c).
func Denormalize(t time.Time, zone string) (date, clock string, err error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}

	local := t.In(loc)
	return local.Format(DateLayout), local.Format(ClockLayout), nil
}

// Resolve возвращает эффективную таймзону товара: override товара,
// иначе дефолт процесса (настройка), иначе дефолт хоста (TZ),
// иначе UTC. Значения не валидируются — это делает Normalize.
func Resolve(override, processDefault, hostDefault string) string {
	for _, zone := range []string{override, processDefault, hostDefault} {
		if zone != "" {
			return zone
		}
	}
	return UTCZone
}
