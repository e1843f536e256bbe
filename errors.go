package cartridge

import (
	"fmt"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/compiler"
)

// StructuralError узел дерева не является ни контейнером, ни листом
type StructuralError = compiler.StructuralError

// IoError ошибка создания каталога или записи файла.
// Уже записанные файлы остаются на диске.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ArchiveError архив не создан, манифест и дескрипторы остаются на диске
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s: %s", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// ArchiveWarning некритичная ситуация при упаковке (например, файл исчез между обходом и чтением)
type ArchiveWarning struct {
	Path string
	Err  error
}

func (w ArchiveWarning) Error() string {
	return fmt.Sprintf("archive warning %s: %s", w.Path, w.Err)
}

func (w ArchiveWarning) Unwrap() error { return w.Err }
