// Package viewmodel derives the ordered card list for one navigation state.
package viewmodel

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/grove-cards/pkg/frontmatter"
	"github.com/mattsolo1/grove-cards/pkg/index"
	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/navigation"
	"github.com/mattsolo1/grove-cards/pkg/order"
	"github.com/mattsolo1/grove-cards/pkg/sanitize"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// PreviewUnavailable is shown in place of a preview whose content could not be read.
const PreviewUnavailable = "preview unavailable"

// Source is what the builder needs from the vault.
type Source interface {
	vault.Reader
	vault.Statter
}

// Builder turns a vault snapshot into cards.
type Builder struct {
	source      Source
	logger      logrus.FieldLogger
	concurrency int
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for per-card failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithConcurrency bounds the number of concurrent stat and read calls.
func WithConcurrency(n int) Option {
	return func(b *Builder) { b.concurrency = n }
}

// New creates a Builder reading previews and stats from source.
func New(source Source, opts ...Option) *Builder {
	b := &Builder{
		source:      source,
		concurrency: order.DefaultStatConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		b.logger = l
	}
	return b
}

// Build returns folder cards followed by file cards for nav. Failures to
// read or stat a single note are absorbed into that card; only a done
// context aborts the build.
func (b *Builder) Build(ctx context.Context, files []models.FileRecord, settings models.ViewSettings, nav navigation.State) ([]models.Card, error) {
	current := models.CleanFolder(nav.CurrentFolder)
	var cards []models.Card

	if settings.ShowFolders && current != "" {
		cards = append(cards, b.folderCards(files, current, nav.SearchTerm)...)
	}

	visible := order.FilterFiles(index.VisibleFiles(files, settings, current), nav.SearchTerm)

	entries, err := b.sortedEntries(ctx, visible, settings)
	if err != nil {
		return nil, err
	}

	fileCards, err := b.fileCards(ctx, entries, settings)
	if err != nil {
		return nil, err
	}
	cards = append(cards, fileCards...)

	b.logger.WithFields(logrus.Fields{
		"vault_files": len(files),
		"folder":      current,
		"cards":       len(cards),
	}).Debug("built card view")

	return cards, nil
}

func (b *Builder) folderCards(files []models.FileRecord, current, term string) []models.Card {
	folders := order.FilterFolders(index.VisibleFolders(index.Folders(files), current), term)
	cards := make([]models.Card, 0, len(folders))
	for _, folder := range folders {
		cards = append(cards, models.NewFolderCard(models.FolderCard{
			Name:           models.BaseName(folder),
			Path:           folder,
			ChildFileCount: index.ChildFileCount(files, folder),
		}))
	}
	return cards
}

// sortedEntries sorts the visible files. Stats are fetched once when either
// the sort key or the displayed date needs them.
func (b *Builder) sortedEntries(ctx context.Context, files []models.FileRecord, settings models.ViewSettings) ([]order.Entry, error) {
	if settings.SortBy == models.SortByName && !settings.ShowDate {
		return order.Sorter{}.Sort(ctx, files, models.SortByName, settings.SortDirection)
	}

	entries, err := order.Lookup(ctx, files, b.source, b.concurrency)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.StatErr != nil {
			b.logger.WithError(e.StatErr).WithField("path", e.File.Path).Debug("stat failed, sorting as lowest")
		}
	}
	order.SortEntries(entries, settings.SortBy, settings.SortDirection)
	return entries, nil
}

func (b *Builder) fileCards(ctx context.Context, entries []order.Entry, settings models.ViewSettings) ([]models.Card, error) {
	cards := make([]models.Card, len(entries))
	for i, e := range entries {
		fc := models.FileCard{File: e.File}
		if settings.ShowDate {
			fc.DisplayDate = displayDate(e, settings.SortBy)
		}
		cards[i] = models.NewFileCard(fc)
	}

	if !settings.ShowPreview {
		return cards, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i := range cards {
		card := cards[i].File
		g.Go(func() error {
			preview, err := b.preview(gctx, card.File.Path, settings.PreviewLength)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				b.logger.WithError(err).WithField("path", card.File.Path).Debug("preview unavailable")
				preview = PreviewUnavailable
			}
			card.PreviewText = &preview
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (b *Builder) preview(ctx context.Context, path string, length int) (string, error) {
	content, err := b.source.ReadFileContent(ctx, path)
	if err != nil {
		return "", err
	}
	return sanitize.Preview(frontmatter.Strip(content), length), nil
}

// displayDate picks the timestamp matching the sort key: created when
// sorting by created, modified otherwise. Nil when the stat failed.
func displayDate(e order.Entry, by models.SortBy) *time.Time {
	if e.Stat == nil {
		return nil
	}
	t := e.Stat.ModifiedAt
	if by == models.SortByCreated {
		t = e.Stat.CreatedAt
	}
	return &t
}
