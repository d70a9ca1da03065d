package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveFolderSource reads export files from a google drive folder.
type DriveFolderSource struct {
	service  *drive.Service
	folderID string
}

func NewDriveFolderSource(ctx context.Context, credentialsJSON []byte, folderID string) (*DriveFolderSource, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return &DriveFolderSource{
		service:  driveService,
		folderID: folderID,
	}, nil
}

func (s *DriveFolderSource) Name() string {
	return "drive:" + s.folderID
}

func (s *DriveFolderSource) ListFiles(ctx context.Context) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType = 'text/csv' and trashed = false", s.folderID)

	var files []File
	pageToken := ""
	for {
		call := s.service.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, createdTime)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve files: %w", err)
		}

		for _, f := range res.Files {
			createdAt, err := time.Parse(time.RFC3339, f.CreatedTime)
			if err != nil {
				log.Warnf("file %s: bad created time %q, using now", f.Name, f.CreatedTime)
				createdAt = time.Now()
			}
			files = append(files, File{
				ID:        f.Id,
				Name:      f.Name,
				CreatedAt: createdAt,
			})
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	return files, nil
}

func (s *DriveFolderSource) Open(ctx context.Context, file File) (io.ReadCloser, error) {
	res, err := s.service.Files.Get(file.ID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", file.Name, err)
	}
	return res.Body, nil
}
