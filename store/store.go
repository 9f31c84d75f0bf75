// Package store reads avatar and item records from the site's MySQL
// database and turns them into render inputs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

const (
	queryColors   = "SELECT colors AS json FROM profiles WHERE id = ?"
	queryEquipped = "SELECT equipped AS json FROM profiles WHERE id = ?"
	queryItems    = `SELECT i.type AS item_type, i.asset AS location, a.asset AS texture_path
FROM items i
LEFT JOIN items a ON i.hat_texture = a.id
WHERE i.id IN (%s) AND i.approved = 1`
)

type Config struct {
	User     string
	Password string
	Host     string
	Port     uint16
	Name     string
}

type Store struct {
	db *sql.DB
}

// Open connects to MySQL and checks the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))
	mc.DBName = cfg.Name
	mc.Timeout = 5 * time.Second

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", mc.Addr, err)
	}
	core.LogInfo("connected to mysql at %s/%s", mc.Addr, mc.DBName)
	return New(db), nil
}

// New wraps an existing handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// FetchAvatar returns a user's body colours and equipped item ids. A missing
// row or unparsable colours give the default profile; unparsable or missing
// equipment gives the single id 0. Only database failures are errors.
func (s *Store) FetchAvatar(ctx context.Context, userID int32) (metadata.ColorProfile, []int32, error) {
	colors := metadata.DefaultColorProfile()

	raw, found, err := s.queryJSON(ctx, queryColors, userID)
	if err != nil {
		return colors, nil, err
	}
	if found {
		parsed := metadata.DefaultColorProfile()
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			core.LogWarn("failed to parse body colors for user %d: %v", userID, err)
		} else {
			colors = parsed
		}
	}

	items := []int32{0}
	raw, found, err = s.queryJSON(ctx, queryEquipped, userID)
	if err != nil {
		return colors, nil, err
	}
	if found {
		var parsed []int32
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			core.LogWarn("failed to parse items for user %d: %v", userID, err)
		} else {
			items = parsed
		}
	}

	return colors, items, nil
}

func (s *Store) queryJSON(ctx context.Context, query string, id int32) (string, bool, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return raw.String, raw.Valid, nil
}

// FetchItems resolves approved item ids to their asset paths. Unknown or
// unapproved ids are silently left out.
func (s *Store) FetchItems(ctx context.Context, ids []int32) ([]metadata.EquippedItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(queryItems, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []metadata.EquippedItem
	for rows.Next() {
		var (
			itemType              int64
			location, texturePath sql.NullString
		)
		if err := rows.Scan(&itemType, &location, &texturePath); err != nil {
			return nil, err
		}
		items = append(items, metadata.EquippedItem{
			Type:        metadata.ItemType(itemType),
			Location:    location.String,
			TexturePath: texturePath.String,
		})
	}
	return items, rows.Err()
}
