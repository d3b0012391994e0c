package shell

import (
	"slices"
	"strings"
)

// Home is the directory every fresh shell starts in.
const Home = "/Users/you"

// Dir is the content of one fictional directory.
type Dir struct {
	Folders []string `json:"folders"`
	Files   []string `json:"files,omitempty"`
}

// State is the mutable part of the toy shell: where the user is and which
// directories they changed. It is plain data so it can travel with a request.
type State struct {
	Cwd string `json:"cwd"`

	// Dirs holds directories that differ from their seeded listing.
	Dirs map[string]Dir `json:"dirs,omitempty"`
}

// NewState returns a shell sitting in Home with the seeded listings.
func NewState() State {
	return State{Cwd: Home}
}

// seeded returns the built-in listing for path.
func seeded(path string) Dir {
	switch path {
	case "/":
		return Dir{Folders: []string{"Users"}}
	case "/Users":
		return Dir{Folders: []string{"you"}}
	case Home:
		return Dir{Folders: []string{"Documents", "Downloads", "Desktop", "Pictures"}}
	default:
		return Dir{
			Folders: []string{"subfolder"},
			Files:   []string{"file1.txt", "file2.txt"},
		}
	}
}

// Dir returns the listing of path, including folders created with mkdir.
func (s State) Dir(path string) Dir {
	if d, ok := s.Dirs[path]; ok {
		return d
	}
	return seeded(path)
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{Cwd: s.Cwd}
	if s.Dirs != nil {
		out.Dirs = make(map[string]Dir, len(s.Dirs))
		for k, d := range s.Dirs {
			out.Dirs[k] = Dir{Folders: slices.Clone(d.Folders), Files: slices.Clone(d.Files)}
		}
	}
	return out
}

// normalize repairs a state received from outside (empty or relative cwd).
func (s State) normalize() State {
	if s.Cwd == "" || !strings.HasPrefix(s.Cwd, "/") {
		s.Cwd = Home
	}
	if len(s.Cwd) > 1 {
		s.Cwd = strings.TrimRight(s.Cwd, "/")
		if s.Cwd == "" {
			s.Cwd = "/"
		}
	}
	return s
}

func (s State) lookup(name string) (string, bool) {
	for _, f := range s.Dir(s.Cwd).Folders {
		if strings.EqualFold(f, name) {
			return f, true
		}
	}
	return "", false
}

func (s State) exists(name string) bool {
	d := s.Dir(s.Cwd)
	for _, f := range append(slices.Clone(d.Folders), d.Files...) {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

func (s *State) addFolder(name string) {
	d := s.Dir(s.Cwd)
	d = Dir{Folders: append(slices.Clone(d.Folders), name), Files: slices.Clone(d.Files)}
	if s.Dirs == nil {
		s.Dirs = make(map[string]Dir)
	}
	s.Dirs[s.Cwd] = d
}

func parent(path string) string {
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return "/"
	}
	return path[:i]
}

func child(path, name string) string {
	if path == "/" {
		return "/" + name
	}
	return path + "/" + name
}
