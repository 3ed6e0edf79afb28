package extract

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/blackwell-systems/binctl/internal/util"
)

// Error reports a failed or unsafe archive extraction.
type Error struct {
	Archive string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Archive, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extract unpacks the archive into a fresh staging directory and returns
// its path. The caller owns the directory and removes it with Cleanup.
// Any entry that would land outside the staging directory aborts the
// whole extraction.
//
// The format is chosen by filename suffix: tar.gz/tgz, tar.xz, tar, zip,
// and single-file gz. Anything else is treated as a raw binary and
// copied through unchanged.
func Extract(archive string) (string, error) {
	staging, err := os.MkdirTemp("", "binctl-")
	if err != nil {
		return "", err
	}
	if err := extractInto(archive, staging); err != nil {
		Cleanup(staging)
		return "", err
	}
	return staging, nil
}

// Cleanup removes a staging directory, ignoring errors. Safe to call on
// paths that are already gone.
func Cleanup(dir string) {
	if dir != "" {
		_ = os.RemoveAll(dir)
	}
}

func extractInto(archive, dest string) error {
	name := strings.ToLower(filepath.Base(archive))
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return extractTar(archive, dest, gzipReader)
	case strings.HasSuffix(name, ".tar.xz"):
		return extractTar(archive, dest, xzReader)
	case strings.HasSuffix(name, ".tar"):
		return extractTar(archive, dest, plainReader)
	case strings.HasSuffix(name, ".zip"):
		return extractZip(archive, dest)
	case strings.HasSuffix(name, ".gz"):
		return extractGzFile(archive, dest)
	default:
		return copyRaw(archive, dest)
	}
}

func gzipReader(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }
func xzReader(r io.Reader) (io.Reader, error)   { return xz.NewReader(r) }
func plainReader(r io.Reader) (io.Reader, error) {
	return r, nil
}

func extractTar(archive, dest string, decompress func(io.Reader) (io.Reader, error)) error {
	f, err := os.Open(archive)
	if err != nil {
		return &Error{Archive: archive, Err: err}
	}
	defer f.Close()

	r, err := decompress(bufio.NewReader(f))
	if err != nil {
		return &Error{Archive: archive, Err: err}
	}
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &Error{Archive: archive, Err: err}
		}
		if err := writeTarEntry(dest, hdr, tr); err != nil {
			return &Error{Archive: archive, Err: err}
		}
	}
}

func writeTarEntry(dest string, hdr *tar.Header, r io.Reader) error {
	target, err := securePath(dest, hdr.Name)
	if err != nil {
		return err
	}
	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, 0755)
	case tar.TypeReg:
		return writeFile(target, r, hdr.FileInfo().Mode().Perm())
	case tar.TypeSymlink:
		if err := checkLink(dest, target, hdr.Linkname); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.Symlink(hdr.Linkname, target)
	case tar.TypeLink:
		src, err := securePath(dest, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.Link(src, target)
	case tar.TypeXGlobalHeader:
		return nil
	default:
		// Devices, fifos and friends have no business in a release.
		return fmt.Errorf("unsupported entry type %d: %s", hdr.Typeflag, hdr.Name)
	}
}

func extractZip(archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return &Error{Archive: archive, Err: err}
	}
	defer zr.Close()
	for _, f := range zr.File {
		if err := writeZipEntry(dest, f); err != nil {
			return &Error{Archive: archive, Err: err}
		}
	}
	return nil
}

func writeZipEntry(dest string, f *zip.File) error {
	target, err := securePath(dest, f.Name)
	if err != nil {
		return err
	}
	info := f.FileInfo()
	if info.IsDir() {
		return os.MkdirAll(target, 0755)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	if info.Mode()&os.ModeSymlink != 0 {
		linkname, err := io.ReadAll(io.LimitReader(rc, 4096))
		if err != nil {
			return err
		}
		if err := checkLink(dest, target, string(linkname)); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.Symlink(string(linkname), target)
	}
	return writeFile(target, rc, info.Mode().Perm())
}

// extractGzFile handles a single gzipped file, e.g. tool-linux-amd64.gz.
// The output keeps the name minus its .gz suffix.
func extractGzFile(archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return &Error{Archive: archive, Err: err}
	}
	defer f.Close()

	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		return &Error{Archive: archive, Err: err}
	}
	base := filepath.Base(archive)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if err := writeFile(filepath.Join(dest, name), gz, 0644); err != nil {
		return &Error{Archive: archive, Err: err}
	}
	return nil
}

// copyRaw handles assets that are not archives at all. Plenty of
// projects release bare binaries.
func copyRaw(archive, dest string) error {
	if err := util.CopyFile(archive, filepath.Join(dest, filepath.Base(archive))); err != nil {
		return &Error{Archive: archive, Err: err}
	}
	return nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// securePath resolves an archive entry name under dest, rejecting names
// that would escape it.
func securePath(dest, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute path in archive: %s", name)
	}
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes archive root: %s", name)
	}
	return target, nil
}

// checkLink rejects symlink targets that are absolute or resolve outside
// the staging directory.
func checkLink(dest, linkPath, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("absolute symlink target: %s", linkname)
	}
	resolved := filepath.Join(filepath.Dir(linkPath), linkname)
	if resolved != dest && !strings.HasPrefix(resolved, dest+string(os.PathSeparator)) {
		return fmt.Errorf("symlink escapes archive root: %s -> %s", filepath.Base(linkPath), linkname)
	}
	return nil
}
