// Package content manages the authored quiz bank and blind-round word
// pairs. Both ship embedded in the binary and are seeded into sqlite on
// startup, so editors can later tweak rows without a rebuild.
package content

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/quiz"
)

//go:embed quizbank.json
var quizBankJSON []byte

//go:embed wordpairs.json
var wordPairsJSON []byte

type bankQuestion struct {
	ID      string       `json:"id"`
	PackID  string       `json:"packId"`
	Prompt  string       `json:"prompt"`
	Options []bankOption `json:"options"`
}

type bankOption struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Weights map[quiz.Axis]int `json:"weights,omitempty"`
}

type pairGroup struct {
	Subcategory string `json:"subcategory"`
	Pairs       []struct {
		Left  string `json:"left"`
		Right string `json:"right"`
	} `json:"pairs"`
}

// Store reads and writes authored content in sqlite.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Seed upserts the embedded quiz bank and word pairs. It runs in a single
// transaction and is safe to call on every startup.
func (s *Store) Seed(ctx context.Context) error {
	var questions []bankQuestion
	if err := json.Unmarshal(quizBankJSON, &questions); err != nil {
		return fmt.Errorf("decode embedded quiz bank: %w", err)
	}
	var groups []pairGroup
	if err := json.Unmarshal(wordPairsJSON, &groups); err != nil {
		return fmt.Errorf("decode embedded word pairs: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	for pos, q := range questions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quiz_questions (id, pack_id, prompt, position)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				pack_id = excluded.pack_id,
				prompt = excluded.prompt,
				position = excluded.position
		`, q.ID, q.PackID, q.Prompt, pos)
		if err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
		for optPos, opt := range q.Options {
			weights, err := json.Marshal(opt.Weights)
			if err != nil {
				return fmt.Errorf("encode weights for %s/%s: %w", q.ID, opt.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO quiz_options (id, question_id, label, weights, position)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(question_id, id) DO UPDATE SET
					label = excluded.label,
					weights = excluded.weights,
					position = excluded.position
			`, opt.ID, q.ID, opt.Label, string(weights), optPos)
			if err != nil {
				return fmt.Errorf("seed option %s/%s: %w", q.ID, opt.ID, err)
			}
		}
	}

	for _, g := range groups {
		for pos, p := range g.Pairs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO word_pairs (subcategory, position, left_word, right_word)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(subcategory, position) DO UPDATE SET
					left_word = excluded.left_word,
					right_word = excluded.right_word
			`, g.Subcategory, pos, p.Left, p.Right)
			if err != nil {
				return fmt.Errorf("seed word pair %s/%d: %w", g.Subcategory, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

// LoadBank reads the full quiz bank back from sqlite in authored order.
func (s *Store) LoadBank(ctx context.Context) (*quiz.Bank, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pack_id, prompt FROM quiz_questions ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []quiz.Question
	index := map[string]int{}
	for rows.Next() {
		var q quiz.Question
		if err := rows.Scan(&q.ID, &q.PackID, &q.Prompt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	optRows, err := s.db.QueryContext(ctx, `
		SELECT question_id, id, label, weights FROM quiz_options ORDER BY question_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var questionID, rawWeights string
		var opt quiz.Option
		if err := optRows.Scan(&questionID, &opt.ID, &opt.Label, &rawWeights); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		if rawWeights != "" {
			if err := json.Unmarshal([]byte(rawWeights), &opt.Weights); err != nil {
				return nil, fmt.Errorf("decode weights for %s/%s: %w", questionID, opt.ID, err)
			}
		}
		i, ok := index[questionID]
		if !ok {
			return nil, fmt.Errorf("option %s references unknown question %s", opt.ID, questionID)
		}
		questions[i].Options = append(questions[i].Options, opt)
	}
	if err := optRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}

	return quiz.NewBank(questions)
}

// WordPairs returns the pairs for a subcategory in authored order, or all
// pairs when subcategory is empty.
func (s *Store) WordPairs(ctx context.Context, subcategory string) ([]cards.WordPair, error) {
	query := `SELECT left_word, right_word FROM word_pairs ORDER BY subcategory, position`
	args := []any{}
	if subcategory != "" {
		query = `SELECT left_word, right_word FROM word_pairs WHERE subcategory = ? ORDER BY position`
		args = append(args, subcategory)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query word pairs: %w", err)
	}
	defer rows.Close()

	var pairs []cards.WordPair
	for rows.Next() {
		var p cards.WordPair
		if err := rows.Scan(&p.Left, &p.Right); err != nil {
			return nil, fmt.Errorf("scan word pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word pairs: %w", err)
	}
	return pairs, nil
}

// Subcategories lists the distinct word-pair subcategories.
func (s *Store) Subcategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT subcategory FROM word_pairs ORDER BY subcategory
	`)
	if err != nil {
		return nil, fmt.Errorf("query subcategories: %w", err)
	}
	defer rows.Close()

	var subs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategories: %w", err)
	}
	return subs, nil
}
