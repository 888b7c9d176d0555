// internal/workers/data-access/learn-alias/store.go
package learnalias

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sales-workers/internal/common/database"
	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"
	"sales-workers/internal/common/textnorm"

	"github.com/redis/go-redis/v9"
)

const (
	selectAliasesQuery = `SELECT alias, terms FROM shop_aliases WHERE shop_id = $1 ORDER BY alias`

	upsertAliasQuery = `INSERT INTO shop_aliases (shop_id, alias, terms, source, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (shop_id, alias) DO UPDATE SET terms = EXCLUDED.terms, source = EXCLUDED.source, updated_at = NOW()`
)

// Store persists learned aliases in shop_aliases and keeps a hot copy in the
// Redis hash aliases:<shopId>, one field per alias holding a JSON term list.
type Store struct {
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewStore(db *sql.DB, redisClient *redis.Client, log logger.Logger) *Store {
	return &Store{db: db, redis: redisClient, logger: log}
}

// Load reads Redis first. On a miss it reads Postgres and back-fills Redis.
func (s *Store) Load(ctx context.Context, shopID string) (map[string][]string, error) {
	if s.redis != nil {
		fields, err := s.redis.HGetAll(ctx, database.AliasesKey(shopID)).Result()
		if err == nil && len(fields) > 0 {
			return decodeFields(fields), nil
		}
		if err != nil {
			s.logger.Warn("alias cache read failed", map[string]interface{}{
				"shopId": shopID,
				"error":  err.Error(),
			})
		}
	}

	if s.db == nil {
		return map[string][]string{}, nil
	}

	rows, err := s.db.QueryContext(ctx, selectAliasesQuery, shopID)
	if err != nil {
		return nil, errors.NewAliasStoreFailedError("load", err)
	}
	defer rows.Close()

	aliases := make(map[string][]string)
	fields := make(map[string]interface{})
	for rows.Next() {
		var alias string
		var raw []byte
		if err := rows.Scan(&alias, &raw); err != nil {
			return nil, errors.NewAliasStoreFailedError("load", err)
		}
		var terms []string
		if err := json.Unmarshal(raw, &terms); err != nil {
			s.logger.Warn("skipping malformed alias row", map[string]interface{}{
				"shopId": shopID,
				"alias":  alias,
			})
			continue
		}
		aliases[alias] = terms
		fields[alias] = string(raw)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAliasStoreFailedError("load", err)
	}

	if s.redis != nil && len(fields) > 0 {
		if err := s.redis.HSet(ctx, database.AliasesKey(shopID), fields).Err(); err != nil {
			s.logger.Warn("alias cache backfill failed", map[string]interface{}{
				"shopId": shopID,
				"error":  err.Error(),
			})
		}
	}
	return aliases, nil
}

// Save stores an AI-learned mapping.
func (s *Store) Save(ctx context.Context, shopID, alias string, terms []string) error {
	_, _, err := s.SaveFrom(ctx, shopID, alias, terms, SourceAI)
	return err
}

// SaveFrom normalizes the mapping, upserts it and refreshes the Redis field
// when the shop hash is already cached. It returns the stored key and terms.
func (s *Store) SaveFrom(ctx context.Context, shopID, alias string, terms []string, source string) (string, []string, error) {
	key, cleaned, err := normalizeMapping(alias, terms)
	if err != nil {
		return "", nil, err
	}

	payload, err := json.Marshal(cleaned)
	if err != nil {
		return "", nil, errors.NewAliasStoreFailedError("encode", err)
	}

	if s.db != nil {
		if _, err := s.db.ExecContext(ctx, upsertAliasQuery, shopID, key, string(payload), source); err != nil {
			return "", nil, errors.NewAliasStoreFailedError("save", err)
		}
	}

	if s.redis != nil {
		if err := s.cacheField(ctx, shopID, key, string(payload)); err != nil {
			if s.db == nil {
				return "", nil, errors.NewAliasStoreFailedError("save", err)
			}
			// Postgres has the row; the next Load back-fills Redis.
			s.logger.Warn("alias cache write failed", map[string]interface{}{
				"shopId": shopID,
				"alias":  key,
				"error":  err.Error(),
			})
		}
	}
	return key, cleaned, nil
}

// cacheField writes one alias into the shop hash. With Postgres behind the
// store a missing hash is left alone, so the next Load fills it with every
// stored alias instead of finding only this one.
func (s *Store) cacheField(ctx context.Context, shopID, alias, payload string) error {
	hashKey := database.AliasesKey(shopID)
	if s.db != nil {
		n, err := s.redis.Exists(ctx, hashKey).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
	return s.redis.HSet(ctx, hashKey, alias, payload).Err()
}

func normalizeMapping(alias string, terms []string) (string, []string, error) {
	key := textnorm.AliasKey(alias)
	if key == "" {
		return "", nil, errors.NewAliasValidationFailedError(fmt.Sprintf("alias %q has no usable characters", alias))
	}

	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		t := textnorm.Normalize(term)
		if t == "" || t == key {
			continue
		}
		normalized = append(normalized, t)
	}
	cleaned := textnorm.Unique(normalized)
	if len(cleaned) == 0 {
		return "", nil, errors.NewAliasValidationFailedError(fmt.Sprintf("alias %q has no target terms", key))
	}
	return key, cleaned, nil
}

func decodeFields(fields map[string]string) map[string][]string {
	out := make(map[string][]string, len(fields))
	for alias, raw := range fields {
		var terms []string
		if err := json.Unmarshal([]byte(raw), &terms); err != nil || len(terms) == 0 {
			continue
		}
		out[alias] = terms
	}
	return out
}
