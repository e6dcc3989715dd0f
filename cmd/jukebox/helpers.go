package main

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jukebox/internal/nong"
)

var titleCaser = cases.Title(language.English)

func kindLabel(kind nong.Kind) string {
	return titleCaser.String(string(kind))
}

func parseSongID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid song ID %q", arg)
	}
	return id, nil
}

func statEntry(s *session, e nong.Entry) (fs.FileInfo, error) {
	return os.Stat(s.mgr.ResolvePath(e))
}
