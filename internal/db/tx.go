package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PostCommit collects side effects registered during a transaction. Hooks
// run only after a successful commit; a rolled-back transaction discards
// them all.
type PostCommit struct {
	hooks []func()
}

func (p *PostCommit) Add(fn func()) {
	p.hooks = append(p.hooks, fn)
}

func (p *PostCommit) run() {
	for _, h := range p.hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str("panic", fmt.Sprint(r)).
						Msg("post-commit hook panicked")
				}
			}()
			h()
		}()
	}
}

// WithTransaction wraps fn in a database transaction. Any error or panic
// from fn rolls the whole transaction back, which also releases every
// advisory lock acquired inside it.
func WithTransaction(
	ctx context.Context,
	db *gorm.DB,
	fn func(tx *gorm.DB, post *PostCommit) error,
) error {
	post := &PostCommit{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, post)
	})
	if err != nil {
		return err
	}

	post.run()
	return nil
}
