package serviceImp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"agriplan/entities"
	"agriplan/pkg/apperr"
	"agriplan/pkg/catalog"
	"agriplan/pkg/kb/repository"
	"agriplan/pkg/kb/service"
)

const chunkRunes = 1000

type Svc struct{ r repository.NoteRepository }

func New(r repository.NoteRepository) service.NoteService { return &Svc{r: r} }

// chunkText cuts text at the first line break after maxRunes.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	var parts []string
	var cur strings.Builder
	count := 0
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			parts = append(parts, s)
		}
		cur.Reset()
		count = 0
	}
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			flush()
		}
	}
	flush()
	return parts
}

func (s *Svc) Ingest(ctx context.Context, title, crop, tags, text, sourceURL string) (*entities.NoteDocument, int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, 0, fmt.Errorf("title is required: %w", apperr.ErrInvalidInput)
	}
	chs := chunkText(text, chunkRunes)
	if len(chs) == 0 {
		return nil, 0, fmt.Errorf("text is required: %w", apperr.ErrInvalidInput)
	}
	if crop != "" {
		crop = catalog.Slug(crop)
	}
	d := &entities.NoteDocument{Title: title, Crop: crop, Tags: strings.TrimSpace(tags), SourceURL: sourceURL}
	rows := make([]entities.NoteChunk, len(chs))
	for i := range chs {
		rows[i] = entities.NoteChunk{Ord: i, Text: chs[i]}
	}
	if err := s.r.CreateDoc(ctx, d, rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

func terms(q string) []string {
	fields := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := map[string]bool{}
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 3 || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// score counts term occurrences, with a bonus when the whole query appears
// verbatim.
func score(text, query string, ts []string) float64 {
	low := strings.ToLower(text)
	var sc float64
	for _, t := range ts {
		sc += float64(strings.Count(low, t))
	}
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" && strings.Contains(low, q) {
		sc += float64(len(ts)) + 1
	}
	return sc
}

func (s *Svc) Search(ctx context.Context, query, crop string, k int) ([]service.Hit, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}
	if crop != "" {
		crop = catalog.Slug(crop)
	}
	chunks, err := s.r.Chunks(ctx, crop)
	if err != nil {
		return nil, err
	}
	ts := terms(q)

	hits := make([]service.Hit, 0, len(chunks))
	for _, ch := range chunks {
		if sc := score(ch.Text, q, ts); sc > 0 {
			hits = append(hits, service.Hit{NoteChunk: ch, Score: sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}

	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.DocID]; !ok {
			seen[h.DocID] = struct{}{}
			ids = append(ids, h.DocID)
		}
	}
	meta, err := s.r.DocsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range hits {
		if d, ok := meta[hits[i].DocID]; ok {
			hits[i].DocTitle = d.Title
			hits[i].SourceURL = d.SourceURL
		}
	}
	return hits, nil
}

func (s *Svc) Docs(ctx context.Context) ([]entities.NoteDocument, error) {
	return s.r.ListDocs(ctx)
}
