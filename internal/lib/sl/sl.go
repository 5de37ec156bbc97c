// Package sl содержит небольшие помощники для структурированного
// логирования через slog.
package sl

import "log/slog"

// Err упаковывает ошибку в slog.Attr с ключом "error", чтобы поле
// ошибки во всех записях лога называлось одинаково:
//
//	log.Error("failed to save user", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
