// Command siftinspect prints what sift knows about audio files: the tags
// read from the file, the marks written into it and the marks in the store.
//
// With -import, marks found in a file are copied into the store for files
// the store does not know yet.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/llehouerou/sift/internal/lister"
	"github.com/llehouerou/sift/internal/store"
	"github.com/llehouerou/sift/internal/tags"
)

func main() {
	importMarks := flag.Bool("import", false, "copy marks stored in files into the store")
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatalf("usage: %s [-import] FOLDER | FILE...", os.Args[0])
	}

	paths, err := lister.ParseDrop(strings.Join(flag.Args(), "\n"))
	if err != nil {
		log.Fatalf("Failed to list files: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("No audio files found")
	}

	st, err := store.Open()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	for _, p := range paths {
		log.Printf("%s", p)

		info, err := tags.Read(p)
		if err != nil {
			log.Printf("  tags: %v", err)
		} else {
			log.Printf("  title=%q artist=%q album=%q genre=%q", info.Title, info.Artist, info.Album, info.Genre)
		}

		marks, err := tags.ReadMarks(p)
		switch {
		case err != nil:
			log.Printf("  file marks: %v", err)
		case marks.Empty():
			log.Println("  file marks: none")
		default:
			log.Printf("  file marks: rating=%d labels=%v", marks.Rating, marks.Labels)
		}

		rec, ok, err := st.Get(p)
		switch {
		case err != nil:
			log.Printf("  stored: %v", err)
		case !ok:
			log.Println("  stored: none")
			if *importMarks && !marks.Empty() {
				imported := store.Record{Path: p, Rating: marks.Rating, Tags: marks.Labels}
				if err := st.Put(imported); err != nil {
					log.Printf("  import: %v", err)
				} else {
					log.Println("  imported file marks")
				}
			}
		default:
			log.Printf("  stored: rating=%d tags=%v verdict=%s", rec.Rating, rec.Tags, rec.Verdict)
		}
	}
}
