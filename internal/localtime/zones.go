package localtime

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"strings"
	"time"
)

// Zone — элемент каталога таймзон для выбора в админке.
type Zone struct {
	// ID — идентификатор IANA, например "Europe/Berlin".
	ID string `json:"id"`

	// Offset — текущее смещение от UTC в виде "UTC+02:00".
	// Вычисляется на момент запроса каталога, поэтому для зон с
	// переходом на летнее время меняется в течение года.
	Offset string `json:"offset"`
}

// Каталоги tzdata в порядке поиска. Перекрывается переменной ZONEINFO —
// тем же контрактом, что у time.LoadLocation.
var zoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
}

// Zones перечисляет известные хосту таймзоны в порядке обхода каталога
// tzdata. Последовательность можно обходить повторно; смещения
// вычисляются в момент обхода.
func Zones() iter.Seq[Zone] {
	return ZonesAt(time.Now())
}

// ZonesAt — как Zones, но смещения считаются на заданный момент.
// Отдельная точка входа нужна тестам и отображению "что будет летом".
func ZonesAt(at time.Time) iter.Seq[Zone] {
	return func(yield func(Zone) bool) {
		dir := zoneDir()
		root := os.DirFS(dir)

		fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			name := path.Base(p)
			if d.IsDir() {
				// Служебные поддеревья с дублями зон.
				if name == "posix" || name == "right" {
					return fs.SkipDir
				}
				return nil
			}
			// Зоны начинаются с заглавной буквы; всё остальное в
			// каталоге — служебные файлы (zone.tab, leapseconds, ...).
			if name == "" || name[0] < 'A' || name[0] > 'Z' || strings.Contains(name, ".") {
				return nil
			}
			loc, lerr := time.LoadLocation(p)
			if lerr != nil {
				return nil
			}
			if !yield(Zone{ID: p, Offset: FormatOffset(at.In(loc))}) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// FormatOffset форматирует смещение момента t от UTC как "UTC±HH:MM".
func FormatOffset(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offset/3600, offset%3600/60)
}

func zoneDir() string {
	if dir := os.Getenv("ZONEINFO"); dir != "" {
		return dir
	}
	for _, dir := range zoneDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return zoneDirs[0]
}
