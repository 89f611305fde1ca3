package repositories

import (
	"context"
	"fmt"
	"net/url"
)

// Open returns the repository described by connStr.
// Supported schemes: sqlite://<path>, file://<dir>, memory://,
// postgres:// and postgresql://.
func Open(ctx context.Context, connStr string) (Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			return nil, fmt.Errorf("sqlite connection string has no path")
		}
		return NewSQLiteRepository(ctx, path)
	case "file":
		dir := u.Host + u.Path
		if dir == "" {
			return nil, fmt.Errorf("file connection string has no directory")
		}
		return NewFileRepository(dir)
	case "memory":
		return NewInMemoryRepository(), nil
	case "postgres", "postgresql":
		return NewPostgresRepository(ctx, u.String())
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
