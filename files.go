package cartridge

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
)

// ArchiveExt расширение пакета Common Cartridge
const ArchiveExt = ".imscc"

// FileSink запись пакета в локальную файловую систему
type FileSink struct {
	dirMode   os.FileMode
	fileMode  os.FileMode
	onWarning func(ctx context.Context, w ArchiveWarning)
}

type SinkOption func(s *FileSink)

// WithWarningHandler обработчик некритичных ситуаций упаковки (по-умолчанию - warn в лог)
func WithWarningHandler(fn func(ctx context.Context, w ArchiveWarning)) SinkOption {
	return func(s *FileSink) {
		if fn != nil {
			s.onWarning = fn
		}
	}
}

func WithModes(dir, file os.FileMode) SinkOption {
	return func(s *FileSink) {
		s.dirMode = dir
		s.fileMode = file
	}
}

func NewFileSink(opts ...SinkOption) *FileSink {
	s := &FileSink{
		dirMode:  0755,
		fileMode: 0644,
		onWarning: func(ctx context.Context, w ArchiveWarning) {
			logger.Warn(ctx, "archive warning", zap.String("path", w.Path), zap.Error(w.Err))
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// EnsureDirectory идемпотентно создает каталог вместе с промежуточными
func (s *FileSink) EnsureDirectory(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return &IoError{Op: "mkdir", Path: path, Err: err}
	}
	if err := CreateDir(path, s.dirMode); err != nil {
		return &IoError{Op: "mkdir", Path: path, Err: err}
	}

	return nil
}

// WriteFile перезаписывает файл целиком
func (s *FileSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return &IoError{Op: "write", Path: path, Err: err}
	}
	if err := WriteFile(path, content, s.fileMode); err != nil {
		return &IoError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// ArchiveDirectory упаковывает каталог в destWithoutExt + ".imscc"
func (s *FileSink) ArchiveDirectory(ctx context.Context, sourceDir, destWithoutExt string) (string, error) {
	target := destWithoutExt + ArchiveExt
	err := Zip(ctx, sourceDir, target, func(w ArchiveWarning) {
		s.onWarning(ctx, w)
	})
	if err != nil {
		return "", &ArchiveError{Path: target, Err: err}
	}

	return target, nil
}

// ArchiveFiles упаковывает только перечисленные файлы каталога (пути относительно sourceDir, через "/").
// Прочее содержимое каталога, например дескрипторы прошлых запусков, в архив не попадает.
func (s *FileSink) ArchiveFiles(ctx context.Context, sourceDir, destWithoutExt string, files []string) (string, error) {
	target := destWithoutExt + ArchiveExt
	err := zipTree(ctx, sourceDir, target, selectFiles(files), func(w ArchiveWarning) {
		s.onWarning(ctx, w)
	})
	if err != nil {
		return "", &ArchiveError{Path: target, Err: err}
	}

	return target, nil
}

// WriteFile пишем в файл по указанному пути (файл перезаписывается)
func WriteFile(path string, data []byte, mode os.FileMode) (err error) {
	if mode == 0 {
		mode = 0644
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	if _, err = file.Write(data); err != nil {
		return err
	}

	// save changes
	return file.Sync()
}

// ReadFile читаем файл целиком
func ReadFile(path string) (result string, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// IsExist определяем наличие директории/файла
func IsExist(path string) (exist bool) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return true
	}

	return false
}

// CreateDir создание папки
func CreateDir(path string, mode os.FileMode) (err error) {
	if mode == 0 {
		mode = 0711
	}

	return os.MkdirAll(path, mode)
}

// Zip упаковываем содержимое каталога source в target без корневой папки.
// Пути в архиве относительные, через "/", сжатие Deflate с максимальным уровнем.
// Если target лежит внутри source, он в архив не попадает.
// Файлы, исчезнувшие во время обхода, пропускаются через onWarning.
func Zip(ctx context.Context, source, target string, onWarning func(w ArchiveWarning)) error {
	return zipTree(ctx, source, target, nil, onWarning)
}

// selectFiles фильтр для zipTree: сами файлы и их родительские каталоги
func selectFiles(files []string) func(rel string, isDir bool) bool {
	keep := make(map[string]bool, len(files)*2)
	for _, f := range files {
		f = path.Clean(filepath.ToSlash(f))
		keep[f] = true
		for dir := path.Dir(f); dir != "." && dir != "/"; dir = path.Dir(dir) {
			keep[dir+"/"] = true
		}
	}

	return func(rel string, isDir bool) bool {
		if isDir {
			return keep[rel+"/"]
		}
		return keep[rel]
	}
}

// zipTree include == nil - весь каталог
func zipTree(ctx context.Context, source, target string, include func(rel string, isDir bool) bool, onWarning func(w ArchiveWarning)) (err error) {
	if onWarning == nil {
		onWarning = func(ArchiveWarning) {}
	}

	info, err := os.Stat(source)
	if err != nil {
		return errors.Wrap(err, "unable stat source")
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", source)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	zipfile, err := os.Create(target)
	if err != nil {
		return errors.Wrap(err, "unable create archive")
	}
	defer func() {
		if err != nil {
			os.Remove(target)
		}
	}()
	defer func() {
		err = multierr.Append(err, zipfile.Close())
	}()

	archive := zip.NewWriter(zipfile)
	archive.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	defer func() {
		err = multierr.Append(err, archive.Close())
	}()

	return filepath.WalkDir(source, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path != source && errors.Is(walkErr, fs.ErrNotExist) {
				onWarning(ArchiveWarning{Path: path, Err: walkErr})
				return nil
			}
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == source {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == absTarget {
			return nil
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if include != nil && !include(name, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		return addEntry(archive, path, name, d, onWarning)
	})
}

func addEntry(archive *zip.Writer, path, name string, d fs.DirEntry, onWarning func(w ArchiveWarning)) (err error) {
	info, err := d.Info()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			onWarning(ArchiveWarning{Path: path, Err: err})
			return nil
		}
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name

	if d.IsDir() {
		header.Name += "/"
		header.Method = zip.Store
		_, err = archive.CreateHeader(header)
		return err
	}
	if !d.Type().IsRegular() {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			onWarning(ArchiveWarning{Path: path, Err: err})
			return nil
		}
		return err
	}
	defer file.Close()

	header.Method = zip.Deflate
	writer, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, file)

	return err
}
