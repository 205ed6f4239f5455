package service

import "agronome/entities"

type KBService interface {
	UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error)
	Search(query string, k int) ([]entities.KBChunk, error)
	DocsMeta(ids []uint) (map[uint]entities.KBDocument, error)
	// References returns up to k documents whose tags intersect tags, newest first.
	References(tags []string, k int) ([]entities.ArticleRef, error)
}
