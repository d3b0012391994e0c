package shell

import (
	"fmt"
	"strings"
)

// handler runs one command. args is the text after the command word, with
// its original case.
type handler func(st *State, args string) Result

// exact commands match the whole (lowercased, trimmed) input.
var exact = map[string]handler{
	"ls":    list,
	"pwd":   pwd,
	"help":  help,
	"clear": clear,
	"echo":  echo,
	"cd":    cd,
	"mkdir": mkdir,
}

// prefixed commands match inputs starting with "<name> ".
var prefixed = []struct {
	name string
	run  handler
}{
	{"echo", echo},
	{"cd", cd},
	{"mkdir", mkdir},
}

// HelpLines is the text printed by help.
var HelpLines = []string{
	"Basic commands:",
	"  ls        - list files in current folder",
	"  cd <dir>  - change to a folder",
	"  cd ..     - go up one folder",
	"  mkdir     - create a new folder",
	"  pwd       - show current folder path",
	"  echo      - print some text",
	"  clear     - clear the screen",
}

func list(st *State, _ string) Result {
	d := st.Dir(st.Cwd)
	entries := make([]string, 0, len(d.Folders)+len(d.Files))
	for _, f := range d.Folders {
		entries = append(entries, f+"/")
	}
	entries = append(entries, d.Files...)

	hint := "Nothing to go into here. Try 'cd ..' to go back up."
	if len(d.Folders) > 0 {
		hint = fmt.Sprintf("Those are the folders here. Try 'cd %s' to go into one.", d.Folders[0])
	}
	return output(hint, strings.Join(entries, "  "))
}

func pwd(st *State, _ string) Result {
	return output("That's where you are right now. Try 'ls' to see what's here.", st.Cwd)
}

func help(*State, string) Result {
	return output("", HelpLines...)
}

func clear(*State, string) Result {
	return Result{Clear: true}
}

func echo(_ *State, args string) Result {
	return output("", args)
}

func cd(st *State, args string) Result {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return output("", "Usage: cd <folder-name>")
	}

	target := fields[0]
	if target == ".." {
		st.Cwd = parent(st.Cwd)
		return output("You went up one folder. Try 'pwd' to see where you are.", "Changed to "+st.Cwd)
	}

	name, ok := st.lookup(target)
	if !ok {
		return output("", fmt.Sprintf("No folder named '%s' here", target))
	}
	st.Cwd = child(st.Cwd, name)
	return output("You're in a new folder now. Try 'ls' again.", "Changed to "+st.Cwd)
}

func mkdir(st *State, args string) Result {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return output("", "Usage: mkdir <folder-name>")
	}

	name := strings.Trim(fields[0], "/")
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return output("", fmt.Sprintf("mkdir: %s: Invalid folder name", fields[0]))
	}
	if st.exists(name) {
		return output("", fmt.Sprintf("mkdir: %s: File exists", name))
	}
	st.addFolder(name)
	return output(fmt.Sprintf("Created '%s'! Try 'ls' to see it.", name), "Created folder: "+name)
}
