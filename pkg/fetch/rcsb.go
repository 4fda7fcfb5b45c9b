package fetch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/capsidlab/jrfatlas/internal/util"
)

// DownloadPDB fetches a coordinate file from RCSB into dir, returning the
// local path. An already-downloaded file is reused.
func (c *Client) DownloadPDB(ctx context.Context, pdbID, dir string) (string, error) {
	if pdbID == "" {
		return "", fmt.Errorf("empty pdb id")
	}

	local := filepath.Join(dir, strings.ToLower(pdbID)+".pdb")
	if util.FileExists(local) {
		return local, nil
	}

	u := fmt.Sprintf("%s/download/%s.pdb", c.RCSBBase, strings.ToUpper(pdbID))
	resp, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 256<<20))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pdbID, err)
	}
	if err := util.AtomicWriteFile(local, data); err != nil {
		return "", err
	}
	return local, nil
}
