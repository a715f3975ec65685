// Package localtime — нормализация времени расписаний.
//
// Пользователь вводит дату и время "на стене" в выбранной таймзоне;
// хранилище знает только канонический момент в UTC с точностью до
// минуты. Пакет делает эту конвертацию в обе стороны без потерь
// (Denormalize(Normalize(...)) возвращает исходный ввод), разрешает
// эффективную таймзону товара по цепочке фолбэков и перечисляет
// поддерживаемые таймзоны с текущим смещением для админки.
package localtime
