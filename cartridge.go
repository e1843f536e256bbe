// Package cartridge собирает пакет IMS Common Cartridge из дерева курса:
// манифест, LTI-дескрипторы ресурсов и, по запросу, архив .imscc.
//
// Генерация разделена на фазы: Build (в памяти, без ввода-вывода), Write (запись файлов)
// и Package (упаковка). Упаковка начинается только после завершения записи.
package cartridge

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/compiler"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/descriptor"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/ident"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/manifest"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

// Sink куда генератор складывает результат
type Sink interface {
	EnsureDirectory(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content []byte) error
	ArchiveDirectory(ctx context.Context, sourceDir, destWithoutExt string) (string, error)
}

// FileArchiver необязательное расширение Sink: упаковка только перечисленных файлов каталога
type FileArchiver interface {
	ArchiveFiles(ctx context.Context, sourceDir, destWithoutExt string, files []string) (string, error)
}

// File дескриптор ресурса с путем относительно каталога манифеста
type File struct {
	Path    string
	Content []byte
}

// Cartridge результат фазы Build
type Cartridge struct {
	ManifestID     string
	OrganizationID string
	Manifest       []byte
	Resources      []model.ResourceRecord
	Files          []File
}

type Result struct {
	Manifest    string
	ArchivePath string
	Resources   int
}

// Generator не хранит изменяемого состояния между вызовами: аллокатор создается на каждую генерацию,
// поэтому конкурентные вызовы безопасны.
type Generator struct {
	sink            Sink
	renderer        *descriptor.Renderer
	newAllocator    func() (ident.Allocator, error)
	assessments     bool
	defaultCategory string
	generatedOnly   bool
}

type Option func(g *Generator)

func WithStrategy(strategy ident.Strategy) Option {
	return func(g *Generator) {
		g.newAllocator = func() (ident.Allocator, error) {
			return ident.New(strategy)
		}
	}
}

// WithAllocatorFactory собственный источник идентификаторов (вызывается на каждую генерацию)
func WithAllocatorFactory(fn func() ident.Allocator) Option {
	return func(g *Generator) {
		g.newAllocator = func() (ident.Allocator, error) {
			return fn(), nil
		}
	}
}

func WithAssessments(enabled bool) Option {
	return func(g *Generator) {
		g.assessments = enabled
	}
}

func WithRenderer(r *descriptor.Renderer) Option {
	return func(g *Generator) {
		if r != nil {
			g.renderer = r
		}
	}
}

func WithDefaultCategory(category string) Option {
	return func(g *Generator) {
		g.defaultCategory = category
	}
}

// WithGeneratedOnly в архив попадают только манифест и дескрипторы текущей генерации.
// Действует, если Sink реализует FileArchiver, иначе упаковывается весь каталог.
func WithGeneratedOnly(enabled bool) Option {
	return func(g *Generator) {
		g.generatedOnly = enabled
	}
}

// New sink может быть nil, если нужен только Build
func New(sink Sink, opts ...Option) *Generator {
	g := &Generator{
		sink:            sink,
		renderer:        descriptor.New(),
		assessments:     true,
		defaultCategory: manifest.DefaultCategory,
	}
	WithStrategy(ident.StrategyCounter)(g)
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Build компиляция дерева и рендер всех документов в памяти.
// Порядок выдачи идентификаторов: манифест, организация, затем дерево.
func (g *Generator) Build(course model.Course) (*Cartridge, error) {
	alloc, err := g.newAllocator()
	if err != nil {
		return nil, err
	}
	alloc.Reset()

	cart := &Cartridge{
		ManifestID:     alloc.Next(ident.ManifestPrefix, ""),
		OrganizationID: alloc.Next(ident.OrganizationPrefix, ""),
	}

	res, err := compiler.Compile(course.Modules, alloc, compiler.WithAssessments(g.assessments))
	if err != nil {
		return nil, err
	}
	cart.Resources = res.Resources

	meta := manifest.MetaFromCourse(course, g.defaultCategory)
	cart.Manifest, err = manifest.Assemble(meta, cart.OrganizationID, cart.ManifestID, res.ItemsXML, res.Resources)
	if err != nil {
		return nil, err
	}

	cart.Files = make([]File, 0, len(res.Resources))
	for _, rec := range res.Resources {
		content, err := g.renderer.Render(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "resource %s", rec.ID)
		}
		cart.Files = append(cart.Files, File{Path: rec.Href(), Content: content})
	}

	return cart, nil
}

// Write запись манифеста в manifestPath и дескрипторов в соседние каталоги ресурсов.
// Первая ошибка прерывает запись, уже записанные файлы не удаляются.
func (g *Generator) Write(ctx context.Context, cart *Cartridge, manifestPath string) error {
	if g.sink == nil {
		return errors.New("sink is not configured")
	}
	dir := filepath.Dir(manifestPath)

	if err := g.sink.EnsureDirectory(ctx, dir); err != nil {
		return err
	}
	if err := g.sink.WriteFile(ctx, manifestPath, cart.Manifest); err != nil {
		return err
	}

	for _, f := range cart.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := g.sink.EnsureDirectory(ctx, filepath.Dir(path)); err != nil {
			return err
		}
		if err := g.sink.WriteFile(ctx, path, f.Content); err != nil {
			return err
		}
	}

	return nil
}

// Package упаковка каталога dir в dest + ".imscc"
func (g *Generator) Package(ctx context.Context, dir, dest string) (string, error) {
	if g.sink == nil {
		return "", errors.New("sink is not configured")
	}

	return g.sink.ArchiveDirectory(ctx, dir, dest)
}

func (g *Generator) pack(ctx context.Context, cart *Cartridge, manifestPath string) (string, error) {
	dir := filepath.Dir(manifestPath)
	if !g.generatedOnly {
		return g.Package(ctx, dir, ArchiveBase(manifestPath))
	}

	archiver, ok := g.sink.(FileArchiver)
	if !ok {
		logger.Warn(ctx, "sink can not archive selected files, packing whole directory", zap.String("dir", dir))
		return g.Package(ctx, dir, ArchiveBase(manifestPath))
	}

	files := make([]string, 0, len(cart.Files)+1)
	files = append(files, filepath.Base(manifestPath))
	for _, f := range cart.Files {
		files = append(files, f.Path)
	}

	return archiver.ArchiveFiles(ctx, dir, ArchiveBase(manifestPath), files)
}

// Generate полный цикл. Пустой manifestPath - только сборка в памяти, без обращений к Sink.
func (g *Generator) Generate(ctx context.Context, course model.Course, manifestPath string, pack bool) (result Result, err error) {
	start := time.Now()
	ctx = logger.SetFieldCtx(ctx, logger.CourseKey, course.Title)
	defer func() {
		monitoringGeneration(start, err)
	}()

	cart, err := g.Build(course)
	if err != nil {
		logger.Error(ctx, "unable build cartridge", zap.Error(err))
		return result, err
	}
	monitoringPhase(phaseBuild, start)
	monitoringResources(cart.Resources)

	result.Manifest = string(cart.Manifest)
	result.Resources = len(cart.Resources)
	if manifestPath == "" {
		return result, nil
	}

	phase := time.Now()
	if err = g.Write(ctx, cart, manifestPath); err != nil {
		logger.Error(ctx, "unable write cartridge", zap.String("manifest", manifestPath), zap.Error(err))
		return result, err
	}
	monitoringPhase(phaseWrite, phase)

	if pack {
		phase = time.Now()
		dir := filepath.Dir(manifestPath)
		result.ArchivePath, err = g.pack(ctx, cart, manifestPath)
		if err != nil {
			logger.Error(ctx, "unable package cartridge", zap.String("dir", dir), zap.Error(err))
			return result, err
		}
		monitoringPhase(phaseArchive, phase)
	}

	logger.Info(ctx, "cartridge generated",
		zap.Int("resources", result.Resources),
		zap.String("manifest", manifestPath),
		zap.String("archive", result.ArchivePath),
		zap.Duration("timing", time.Since(start)))

	return result, nil
}

// ErrArchiveOutside архив оказался бы вне рабочего каталога
var ErrArchiveOutside = errors.New("archive would be written outside the working directory")

// ArchiveBase путь архива без расширения: рядом с каталогом манифеста, с его именем.
// Для пути без каталога (например "imsmanifest.xml") каталогом манифеста считается текущий,
// и архив пишется в его родителя: <родитель cwd>/<имя cwd>.imscc.
func ArchiveBase(manifestPath string) string {
	dir := filepath.Dir(manifestPath)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	return dir
}

// ArchivePathFor итоговый путь .imscc для manifestPath
func ArchivePathFor(manifestPath string) string {
	return ArchiveBase(manifestPath) + ArchiveExt
}

// CheckArchiveTarget ошибка, если манифест лежит прямо в текущем каталоге и архив ушел бы в родительский
func CheckArchiveTarget(manifestPath string) error {
	if filepath.Dir(filepath.Clean(manifestPath)) == "." {
		return errors.Wrapf(ErrArchiveOutside, "manifest %q has no directory", manifestPath)
	}

	return nil
}

// ConfigOptions опции генератора из конфигурации сервиса. Опции, добавленные после, переопределяют эти.
func ConfigOptions(cfg model.Config) ([]Option, error) {
	opts := []Option{
		WithAssessments(cfg.Assessments.Value),
		WithGeneratedOnly(cfg.ArchiveGeneratedOnly.Value),
		WithDefaultCategory(FirstVal(cfg.DefaultCategory, manifest.DefaultCategory)),
		WithRenderer(descriptor.New(
			descriptor.WithVendor(descriptor.Vendor{
				Code:        FirstVal(cfg.VendorCode, descriptor.DefaultVendor.Code),
				Name:        FirstVal(cfg.VendorName, descriptor.DefaultVendor.Name),
				Description: FirstVal(cfg.VendorDescription, descriptor.DefaultVendor.Description),
				URL:         FirstVal(cfg.VendorURL, descriptor.DefaultVendor.URL),
				Contact:     FirstVal(cfg.VendorContact, descriptor.DefaultVendor.Contact),
			}),
			descriptor.WithToolID(cfg.ToolID),
			descriptor.WithPrivacyLevel(cfg.PrivacyLevel),
			descriptor.WithIconURL(cfg.IconURL),
		)),
	}

	if cfg.IdsStrategy != "" {
		strategy, err := ident.ParseStrategy(cfg.IdsStrategy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStrategy(strategy))
	}

	return opts, nil
}
