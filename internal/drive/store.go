// Package drive implements the object store on Google Drive: listing the
// inbox folder, ranged content reads, and the parent/description updates the
// quarantine path relies on.
package drive

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"meeting-insights-go/internal/types"
)

const listPageSize = 100

// Store wraps a Drive service with the operations the pipeline needs.
type Store struct {
	svc *gdrive.Service
}

// NewStore creates a Drive-backed store using the provided token source.
func NewStore(ctx context.Context, ts oauth2.TokenSource) (*Store, error) {
	svc, err := gdrive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Store{svc: svc}, nil
}

// List returns the non-trashed media files under folderID, ordered by
// creation time ascending.
func (s *Store) List(ctx context.Context, folderID string, mimePrefixes []string) ([]types.SourceObject, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	if len(mimePrefixes) > 0 {
		q += " and ("
		for i, p := range mimePrefixes {
			if i > 0 {
				q += " or "
			}
			q += fmt.Sprintf("mimeType contains '%s'", p)
		}
		q += ")"
	}

	var out []types.SourceObject
	pageToken := ""
	for {
		call := s.svc.Files.List().
			Q(q).
			OrderBy("createdTime").
			PageSize(listPageSize).
			Fields("nextPageToken, files(id, name, mimeType, parents, createdTime)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", folderID, err)
		}
		for _, f := range res.Files {
			created, _ := time.Parse(time.RFC3339, f.CreatedTime)
			out = append(out, types.SourceObject{
				ID:        f.Id,
				Name:      f.Name,
				FolderID:  folderID,
				MimeType:  f.MimeType,
				CreatedAt: created,
			})
		}
		if res.NextPageToken == "" {
			return out, nil
		}
		pageToken = res.NextPageToken
	}
}

// Size returns the content length of an object.
func (s *Store) Size(ctx context.Context, objectID string) (int64, error) {
	f, err := s.svc.Files.Get(objectID).Fields("size").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("stat object %s: %w", objectID, err)
	}
	return f.Size, nil
}

// ReadRange downloads [offset, offset+length) of an object's content.
func (s *Store) ReadRange(ctx context.Context, objectID string, offset, length int64) ([]byte, error) {
	call := s.svc.Files.Get(objectID).Context(ctx)
	call.Header().Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+length-1))
	resp, err := call.Download()
	if err != nil {
		return nil, fmt.Errorf("download range of %s: %w", objectID, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, length))
	if err != nil {
		return nil, fmt.Errorf("read range of %s: %w", objectID, err)
	}
	return data, nil
}

// Move reparents an object from one folder to another.
func (s *Store) Move(ctx context.Context, objectID, fromFolderID, toFolderID string) error {
	_, err := s.svc.Files.Update(objectID, &gdrive.File{}).
		AddParents(toFolderID).
		RemoveParents(fromFolderID).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("move object %s: %w", objectID, err)
	}
	return nil
}

// Annotate sets an object's free-text description.
func (s *Store) Annotate(ctx context.Context, objectID, note string) error {
	_, err := s.svc.Files.Update(objectID, &gdrive.File{Description: note}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("annotate object %s: %w", objectID, err)
	}
	return nil
}
