package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-chathtml"
	"github.com/alnah/go-chathtml/internal/logging"
	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

const programName = "chathtml"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // enum flags
	FileGlob string   // file flags, comma separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"mode":       {Values: chathtml.ModeNames()},
	"role":       {Values: []string{string(chathtml.AvatarCharacter), string(chathtml.AvatarMe)}},
	"log-format": {Values: logging.Formats()},

	"config": {FileGlob: "*.yaml,*.yml"},

	"cache-dir":  {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	renderFS := flag.NewFlagSet("render", flag.ContinueOnError)
	defineRenderFlags(renderFS, &renderFlags{})

	documentFS := flag.NewFlagSet("document", flag.ContinueOnError)
	defineDocumentFlags(documentFS, &documentFlags{})

	commonFS := flag.NewFlagSet("common", flag.ContinueOnError)
	addCommonFlags(commonFS, &commonFlags{})

	avatarFS := flag.NewFlagSet("avatar", flag.ContinueOnError)
	defineAvatarFlags(avatarFS, &avatarFlags{})

	documentDefs := extractFlagsFromFlagSet(documentFS)

	return []commandDef{
		{Name: "render", Desc: "Render conversation transcripts to HTML", Flags: extractFlagsFromFlagSet(renderFS), TakesFiles: true},
		{Name: "readable", Desc: "Render a text file as a readable HTML page", Flags: documentDefs, TakesFiles: true},
		{Name: "thread", Desc: "Render a plain-text thread dump as HTML", Flags: documentDefs, TakesFiles: true},
		{Name: "thumbnail", Desc: "Print cached thumbnail paths for images", Flags: extractFlagsFromFlagSet(commonFS), TakesFiles: true},
		{Name: "avatar", Desc: "Install an image as an avatar", Flags: extractFlagsFromFlagSet(avatarFS), TakesFiles: true},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	commands := getCommands()

	var b strings.Builder
	switch shell {
	case ShellBash:
		generateBash(&b, commands)
	case ShellZsh:
		generateZsh(&b, commands)
	case ShellFish:
		generateFish(&b, commands)
	case ShellPowerShell:
		generatePowerShell(&b, commands)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chathtml completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(chathtml completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(chathtml completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    chathtml completion fish > ~/.config/fish/completions/chathtml.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    chathtml completion powershell | Out-String | Invoke-Expression")
}

// flagWords returns every spelling of the flags, long and short.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

func commandNames(commands []commandDef) []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	return names
}

// flagPattern returns the case pattern matching both spellings of f.
func flagPattern(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

func generateBash(b *strings.Builder, commands []commandDef) {
	fmt.Fprintf(b, "# bash completion for %s\n\n", programName)
	fmt.Fprintf(b, "_%s() {\n", programName)
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(commandNames(commands), " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range commands {
		fmt.Fprintf(b, "    %s)\n", c.Name)
		if c.Name == "completion" {
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"$cur\"))\n")
			b.WriteString("        ;;\n")
			continue
		}
		if c.Name == "help" {
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(commandNames(commands), " "))
			b.WriteString("        ;;\n")
			continue
		}

		var valued []flagDef
		for _, f := range c.Flags {
			if f.Type != flagBool {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range valued {
				fmt.Fprintf(b, "        %s)\n", flagPattern(f))
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(f.Values, " "))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
				case flagFile:
					b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
				default:
					b.WriteString("            COMPREPLY=()\n")
				}
				b.WriteString("            return 0\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
		}

		if len(c.Flags) > 0 {
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("            return 0\n")
			b.WriteString("        fi\n")
		}
		if c.TakesFiles {
			b.WriteString("        COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(b, "complete -F _%s %s\n", programName, programName)
}

// escapeZsh escapes text for use inside a single-quoted _arguments spec.
func escapeZsh(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

// zshAction returns the _arguments value part for f.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		return ":directory:_files -/"
	case flagFile:
		var globs []string
		for _, g := range strings.Split(f.FileGlob, ",") {
			globs = append(globs, `-g "`+g+`"`)
		}
		return ":file:_files " + strings.Join(globs, " ")
	default:
		return ":" + f.Long + ": "
	}
}

func generateZsh(b *strings.Builder, commands []commandDef) {
	fmt.Fprintf(b, "#compdef %s\n\n", programName)
	fmt.Fprintf(b, "_%s() {\n", programName)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, escapeZsh(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(b, "    %s)\n", c.Name)
		switch c.Name {
		case "completion":
			b.WriteString("        _values 'shell' bash zsh fish powershell\n")
			b.WriteString("        ;;\n")
			continue
		case "help":
			b.WriteString("        _describe 'command' commands\n")
			b.WriteString("        ;;\n")
			continue
		}

		b.WriteString("        _arguments")
		for _, f := range c.Flags {
			desc := "[" + escapeZsh(f.Desc) + "]" + zshAction(f)
			if f.Short != "" {
				fmt.Fprintf(b, " \\\n            '(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, desc)
			} else {
				fmt.Fprintf(b, " \\\n            '--%s%s'", f.Long, desc)
			}
		}
		if c.TakesFiles {
			b.WriteString(" \\\n            '*:file:_files'")
		}
		b.WriteString("\n        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(b, "compdef _%s %s\n", programName, programName)
}

// escapeFish escapes text for a single-quoted fish string.
func escapeFish(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func generateFish(b *strings.Builder, commands []commandDef) {
	fmt.Fprintf(b, "# fish completion for %s\n\n", programName)
	fmt.Fprintf(b, "complete -c %s -f\n\n", programName)

	for _, c := range commands {
		fmt.Fprintf(b, "complete -c %s -n '__fish_use_subcommand' -a %s -d '%s'\n", programName, c.Name, escapeFish(c.Desc))
	}

	for _, c := range commands {
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)
		b.WriteString("\n")

		switch c.Name {
		case "completion":
			fmt.Fprintf(b, "complete -c %s -n %s -a 'bash zsh fish powershell'\n", programName, cond)
			continue
		case "help":
			fmt.Fprintf(b, "complete -c %s -n %s -a '%s'\n", programName, cond, strings.Join(commandNames(commands), " "))
			continue
		}

		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s -n %s -l %s", programName, cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			case flagString, flagInt:
				line += " -x"
			}
			line += " -d '" + escapeFish(f.Desc) + "'"
			b.WriteString(line + "\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(b, "complete -c %s -n %s -F\n", programName, cond)
		}
	}
}

// quotePowerShell returns words as a PowerShell array literal body.
func quotePowerShell(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + strings.ReplaceAll(w, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

func generatePowerShell(b *strings.Builder, commands []commandDef) {
	fmt.Fprintf(b, "# powershell completion for %s\n\n", programName)
	fmt.Fprintf(b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", programName)
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range commands {
		words := flagWords(c.Flags)
		switch c.Name {
		case "completion":
			words = []string{"bash", "zsh", "fish", "powershell"}
		case "help":
			words = commandNames(commands)
		}
		fmt.Fprintf(b, "        '%s' = @(%s)\n", c.Name, quotePowerShell(words))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($words.Count -lt 2 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $candidates = $commands.Keys\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $candidates = $commands[$words[1]]\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | Sort-Object | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}
