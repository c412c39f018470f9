// Package deck exports the subject/topic/card tree to a portable JSON or
// YAML document and imports such documents back into a store.
//
// Documents carry content only. Review state (ease factor, review dates)
// stays with the database it was earned in; imported cards start fresh.
package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/KazantsevJS/mindflip/internal/store"
)

// FormatVersion is written into every exported document. Import accepts
// any document with the same major version.
const FormatVersion = "v1.0.0"

// Document is the root of an exported deck.
type Document struct {
	Version    string    `json:"version" yaml:"version"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	Subjects   []Subject `json:"subjects" yaml:"subjects"`
}

type Subject struct {
	Name   string  `json:"name" yaml:"name"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"`
	Topics []Topic `json:"topics" yaml:"topics"`
}

type Topic struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Cards []Card `json:"cards" yaml:"cards"`
}

type Card struct {
	Question        string `json:"question" yaml:"question"`
	Answer          string `json:"answer" yaml:"answer"`
	DifficultyLevel int    `json:"difficulty_level,omitempty" yaml:"difficulty_level,omitempty"`
}

// Repos is the part of the store a deck reads from and writes to.
type Repos interface {
	Subjects() store.SubjectRepo
	Topics() store.TopicRepo
	Cards() store.CardRepo
}

// Export walks every subject, topic and card in display order.
func Export(ctx context.Context, r Repos, now time.Time) (*Document, error) {
	subjects, err := r.Subjects().List(ctx)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Version:    FormatVersion,
		ExportedAt: now.UTC(),
		Subjects:   make([]Subject, 0, len(subjects)),
	}
	for _, s := range subjects {
		topics, err := r.Topics().ListBySubject(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		ds := Subject{Name: s.Name, Color: s.Color, Topics: make([]Topic, 0, len(topics))}
		for _, t := range topics {
			cards, err := r.Cards().ListByTopic(ctx, t.ID)
			if err != nil {
				return nil, err
			}
			dt := Topic{Name: t.Name, Color: t.Color, Cards: make([]Card, 0, len(cards))}
			for _, c := range cards {
				dt.Cards = append(dt.Cards, Card{
					Question:        c.Question,
					Answer:          c.Answer,
					DifficultyLevel: c.DifficultyLevel,
				})
			}
			ds.Topics = append(ds.Topics, dt)
		}
		doc.Subjects = append(doc.Subjects, ds)
	}
	return doc, nil
}

// Result counts what an import created.
type Result struct {
	Subjects int `json:"subjects"`
	Topics   int `json:"topics"`
	Cards    int `json:"cards"`
}

// Import appends the document's tree to the store. Existing entities are
// left alone; subjects with the same name are created side by side.
//
// Each entity is its own store operation, so a failure part-way leaves
// the entities created so far in place. The returned Result reports them.
func Import(ctx context.Context, r Repos, doc *Document) (Result, error) {
	var res Result
	if err := checkVersion(doc.Version); err != nil {
		return res, err
	}

	for _, ds := range doc.Subjects {
		s, err := r.Subjects().Create(ctx, store.SubjectInput{Name: ds.Name, Color: ds.Color})
		if err != nil {
			return res, fmt.Errorf("import subject %q: %w", ds.Name, err)
		}
		res.Subjects++

		for _, dt := range ds.Topics {
			t, err := r.Topics().Create(ctx, store.TopicInput{Name: dt.Name, SubjectID: s.ID, Color: dt.Color})
			if err != nil {
				return res, fmt.Errorf("import topic %q: %w", dt.Name, err)
			}
			res.Topics++

			for _, dc := range dt.Cards {
				_, err := r.Cards().Create(ctx, store.CardInput{
					Question:        dc.Question,
					Answer:          dc.Answer,
					TopicID:         t.ID,
					DifficultyLevel: dc.DifficultyLevel,
				})
				if err != nil {
					return res, fmt.Errorf("import card %q: %w", dc.Question, err)
				}
				res.Cards++
			}
		}
	}
	return res, nil
}
