// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"sort"
	"unicode/utf8"

	"github.com/consensys/go-requite/pkg/mmap"
)

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := mmap.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = *NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Line provides information about a given line within the original buffer,
// namely the span of the line within that buffer.
type Line struct {
	// Original text
	text []byte
	// Span within original text of this line.
	span Span
}

// Get the string representing this line.
func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Start returns the starting index of this line in the original buffer.
func (p *Line) Start() int {
	return p.span.start
}

// File represents a given source file (typically stored on disk).
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.
	contents []byte
	// Offset of the first byte of each line.  Computed lazily.
	lines []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, bytes, nil}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []byte {
	return s.contents
}

// Text returns the text covered by a given span of this file.
func (s *File) Text(span Span) string {
	return string(s.contents[span.start:span.end])
}

// Position determines the line and column (both counting from 1) of a given
// byte offset.  Columns count code points rather than bytes.  A carriage
// return, a line feed, or the pair of them each end a line.
func (s *File) Position(offset int) (line int, column int) {
	starts := s.lineStarts()
	offset = max(0, min(offset, len(s.contents)))
	// Find the last line starting at or before offset
	index := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	//
	return index + 1, utf8.RuneCount(s.contents[starts[index]:offset]) + 1
}

// FindFirstEnclosingLine determines the first line  in this source file which
// encloses the start of a span.  Observe that, if the position is beyond the
// bounds of the source file then the last physical line is returned.  Also,
// the returned line is not guaranteed to enclose the entire span, as these can
// cross multiple lines.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	var (
		starts  = s.lineStarts()
		line, _ = s.Position(span.start)
		start   = starts[line-1]
	)
	//
	return Line{s.contents, Span{start, findEndOfLine(start, s.contents)}}
}

func (s *File) lineStarts() []int {
	if s.lines != nil {
		return s.lines
	}
	//
	s.lines = []int{0}
	//
	for i := 0; i < len(s.contents); i++ {
		switch s.contents[i] {
		case '\r':
			if i+1 < len(s.contents) && s.contents[i+1] == '\n' {
				i++
			}
			//
			s.lines = append(s.lines, i+1)
		case '\n':
			s.lines = append(s.lines, i+1)
		}
	}
	//
	return s.lines
}

// Find the end of the enclosing line
func findEndOfLine(index int, text []byte) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' || text[i] == '\r' {
			return i
		}
	}
	// No end in sight!
	return len(text)
}
