package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SequentialRotator is an io.Writer over a log file that renames the file to
// <name>.<n>.log once it grows past maxSize, keeping at most maxBackups rotated
// files no older than maxAge days.
type SequentialRotator struct {
	filename   string
	maxSize    int64
	maxAge     int
	maxBackups int

	mu   sync.Mutex
	file *os.File
	size int64
}

func NewSequentialRotator(filename string, maxSizeMB, maxAge, maxBackups int) *SequentialRotator {
	return &SequentialRotator{
		filename:   filename,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     maxAge,
		maxBackups: maxBackups,
	}
}

func (r *SequentialRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Sync lets zap flush the underlying file.
func (r *SequentialRotator) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	return r.file.Sync()
}

func (r *SequentialRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *SequentialRotator) open() error {
	if err := os.MkdirAll(filepath.Dir(r.filename), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(r.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return err
	}

	r.file = file
	r.size = info.Size()
	return nil
}

func (r *SequentialRotator) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	r.file = nil

	backups := r.backups()
	next := 1
	if len(backups) > 0 {
		next = backups[0].seq + 1
	}

	rotated := fmt.Sprintf("%s.%d.log", strings.TrimSuffix(r.filename, ".log"), next)
	if err := os.Rename(r.filename, rotated); err != nil {
		return err
	}

	r.prune()
	return r.open()
}

type backupFile struct {
	path    string
	seq     int
	modTime time.Time
}

// backups lists rotated files, highest sequence first.
func (r *SequentialRotator) backups() []backupFile {
	base := strings.TrimSuffix(r.filename, ".log")
	matches, err := filepath.Glob(base + ".*.log")
	if err != nil {
		return nil
	}

	files := make([]backupFile, 0, len(matches))
	for _, path := range matches {
		seqPart := strings.TrimSuffix(strings.TrimPrefix(path, base+"."), ".log")
		seq, err := strconv.Atoi(seqPart)
		if err != nil {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		files = append(files, backupFile{path: path, seq: seq, modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].seq > files[j].seq
	})
	return files
}

func (r *SequentialRotator) prune() {
	files := r.backups()
	cutoff := time.Now().AddDate(0, 0, -r.maxAge)

	for i, f := range files {
		expired := r.maxAge > 0 && f.modTime.Before(cutoff)
		overflow := r.maxBackups > 0 && i >= r.maxBackups
		if expired || overflow {
			_ = os.Remove(f.path)
		}
	}
}
