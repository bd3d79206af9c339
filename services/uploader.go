package services

import (
	"log"
	"strings"
)

// DocumentUploader attaches the resume and cover letter to any file
// inputs visible in the current step, keyed by the surrounding label
// text. A missing cover letter falls back to the resume when the upload
// is marked required.
type DocumentUploader struct {
	page       Page
	cfg        SelectorConfig
	resumePath string
	coverPath  string
}

func NewDocumentUploader(page Page, cfg SelectorConfig, resumePath, coverPath string) *DocumentUploader {
	return &DocumentUploader{page: page, cfg: cfg, resumePath: resumePath, coverPath: coverPath}
}

// Attach uploads into every recognized file input in view and returns
// the number of uploads performed. Failures are logged, never fatal.
func (u *DocumentUploader) Attach() int {
	if u.resumePath == "" {
		return 0
	}
	attached := 0
	for _, selector := range u.cfg.FieldGroups {
		groups, err := u.page.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, group := range groups {
			inputs := queryFirst(group, u.cfg.UploadInputs)
			if len(inputs) == 0 {
				continue
			}
			text, _ := group.Text()
			folded := fold(text)
			path := ""
			switch {
			case strings.Contains(folded, "cover"):
				path = u.coverPath
				if path == "" && strings.Contains(folded, "required") {
					path = u.resumePath
				}
			case strings.Contains(folded, "resume") || strings.Contains(folded, "cv"):
				path = u.resumePath
			}
			if path == "" {
				continue
			}
			if err := inputs[0].SetFiles(path); err != nil {
				log.Printf("Failed to upload %s: %v", path, err)
				continue
			}
			attached++
		}
	}
	return attached
}
