package serviceImp

import (
	"sort"
	"strings"

	"agronome/entities"
	"agronome/pkg/kb/repository"
)

const chunkRunes = 1000

type Svc struct{ r repository.KBRepository }

func New(r repository.KBRepository) *Svc { return &Svc{r: r} }

// chunkText cuts after maxRunes, on the next newline.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	parts := []string{}
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		parts = append(parts, cur.String())
	}
	return parts
}

func normTags(tags string) string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	d := &entities.KBDocument{Title: title, Tags: normTags(tags), SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, chunkRunes)
	if len(chs) == 0 {
		return d, 0, nil
	}
	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		rows[i] = entities.KBChunk{DocID: d.DocID, Ord: i, Text: chs[i]}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

// Search scores chunks by how many distinct query terms they contain.
// Chunks with no match are dropped; ties go to the most recent chunk.
func (s *Svc) Search(query string, k int) ([]entities.KBChunk, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || k <= 0 {
		return nil, nil
	}
	seen := map[string]bool{}
	uniq := terms[:0]
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			uniq = append(uniq, t)
		}
	}

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}

	type scored struct {
		ch entities.KBChunk
		sc int
	}
	var list []scored
	for _, ch := range chunks {
		low := strings.ToLower(ch.Text)
		sc := 0
		for _, t := range uniq {
			if strings.Contains(low, t) {
				sc++
			}
		}
		if sc > 0 {
			list = append(list, scored{ch, sc})
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].sc != list[j].sc {
			return list[i].sc > list[j].sc
		}
		return list[i].ch.ChunkID > list[j].ch.ChunkID
	})
	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.KBChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.KBDocument, error) {
	return s.r.DocsByIDs(ids)
}

func (s *Svc) References(tags []string, k int) ([]entities.ArticleRef, error) {
	if len(tags) == 0 || k <= 0 {
		return nil, nil
	}
	want := map[string]bool{}
	for _, t := range tags {
		want[strings.ToLower(strings.TrimSpace(t))] = true
	}
	docs, err := s.r.ListDocs()
	if err != nil {
		return nil, err
	}
	var out []entities.ArticleRef
	for _, d := range docs {
		for _, t := range strings.Split(d.Tags, ",") {
			if want[t] {
				out = append(out, entities.ArticleRef{Title: d.Title, URL: d.SourceURL})
				break
			}
		}
		if len(out) == k {
			break
		}
	}
	return out, nil
}
