package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/pdfops"
	"github.com/pagebind/pagebind/pkg/pipeline"
)

// handleConvert accepts a multipart upload of images plus layout
// options as form fields and responds with the converted PDF. Pages
// follow upload order.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeSourceEmpty, "no images uploaded (field: images)"))
		return
	}

	jobID := uuid.NewString()
	dir, paths, err := saveUploads(jobID, files)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer os.RemoveAll(dir)

	opts, err := optionsFromForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Input = strings.Join(paths, ",")
	opts.Logger = s.logger.With("job_id", jobID)

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Job-Id", jobID)
	w.Header().Set("X-Page-Count", strconv.Itoa(result.Stats.PageCount))
	_, _ = w.Write(result.Output)
}

// handleMerge accepts a multipart upload of PDFs and responds with the
// merged document, in upload order.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["documents"]
	if len(files) < 2 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "merge needs at least two documents (field: documents)"))
		return
	}

	jobID := uuid.NewString()
	dir, paths, err := saveUploads(jobID, files)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer os.RemoveAll(dir)

	outPath := filepath.Join(dir, "merged.pdf")
	if err := pdfops.Merge(paths, outPath); err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "reading merged document"))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Job-Id", jobID)
	_, _ = w.Write(data)
}

// saveUploads writes the uploaded parts into a job-scoped temp
// directory, preserving upload order and basenames.
func saveUploads(jobID string, files []*multipart.FileHeader) (string, []string, error) {
	dir, err := os.MkdirTemp("", "pagebind-"+jobID+"-")
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "creating upload directory")
	}

	paths := make([]string, 0, len(files))
	for i, fh := range files {
		src, err := fh.Open()
		if err != nil {
			os.RemoveAll(dir)
			return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "opening upload %s", fh.Filename)
		}

		// One subdirectory per part keeps order stable even with
		// duplicate names, while the original basename survives so
		// per-image overrides still match.
		partDir := filepath.Join(dir, fmt.Sprintf("%03d", i))
		if err := os.Mkdir(partDir, 0755); err != nil {
			_ = src.Close()
			os.RemoveAll(dir)
			return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "creating upload directory")
		}
		path := filepath.Join(partDir, filepath.Base(fh.Filename))
		dst, err := os.Create(path)
		if err == nil {
			_, err = io.Copy(dst, src)
			_ = dst.Close()
		}
		_ = src.Close()
		if err != nil {
			os.RemoveAll(dir)
			return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "saving upload %s", fh.Filename)
		}
		paths = append(paths, path)
	}
	return dir, paths, nil
}

// optionsFromForm reads layout options from the multipart form fields.
// Field names mirror the JSON tags of pipeline.Options.
func optionsFromForm(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		PageSize:  r.FormValue("page_size"),
		Margin:    r.FormValue("margin"),
		Scaling:   r.FormValue("scaling"),
		AlignH:    r.FormValue("align_h"),
		AlignV:    r.FormValue("align_v"),
		Sizes:     r.FormValue("sizes"),
		Margins:   r.FormValue("margins"),
		Rotations: r.FormValue("rotations"),
		Backend:   r.FormValue("backend"),
	}

	if v := r.FormValue("dpi"); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidDPI, "invalid dpi: %q", v)
		}
		opts.DPI = dpi
	}
	for field, target := range map[string]*bool{
		"autorotate":  &opts.Autorotate,
		"auto_orient": &opts.AutoOrient,
		"refresh":     &opts.Refresh,
	} {
		if v := r.FormValue(field); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", field, v)
			}
			*target = b
		}
	}
	return opts, nil
}
