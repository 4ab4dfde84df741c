package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chathtml <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render conversation transcripts to HTML")
	fmt.Fprintln(w, "  readable    Render a text file as a readable HTML page")
	fmt.Fprintln(w, "  thread      Render a plain-text thread dump as HTML")
	fmt.Fprintln(w, "  thumbnail   Print cached thumbnail paths for images")
	fmt.Fprintln(w, "  avatar      Install an image as the character or user avatar")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'chathtml help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags every command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w, "      --cache-dir <dir>     Thumbnail and avatar directory (default: cache)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles/ and templates/")
	fmt.Fprintln(w, "      --no-highlight        Disable syntax highlighting")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chathtml render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render conversation transcripts (.yaml, .yml, .json) to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Transcript file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch               Re-render transcripts when they change")
	fmt.Fprintln(w, "      --absolute-paths      Resolve relative image/link paths to file:// URLs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversation:")
	fmt.Fprintln(w, "  -m, --mode <s>            Render mode: cai-chat, chat, instruct")
	fmt.Fprintln(w, "      --user <s>            User display name")
	fmt.Fprintln(w, "      --assistant <s>       Assistant display name")
	fmt.Fprintln(w, "      --reset-cache         Bust the user avatar browser cache")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mode and names resolve as: flag, then transcript, then config.")
}

// printReadableUsage prints usage for the readable command.
func printReadableUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chathtml readable <input|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown-ish text as a readable HTML fragment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <file>       Output file (default stdout)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printThreadUsage prints usage for the thread command.
func printThreadUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chathtml thread <input|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a plain-text thread dump as HTML.")
	fmt.Fprintln(w, "Posts start with a \"--- <number>\" header line.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <file>       Output file (default stdout)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printThumbnailUsage prints usage for the thumbnail command.
func printThumbnailUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chathtml thumbnail <image>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the cached thumbnail path of each image, regenerating")
	fmt.Fprintln(w, "thumbnails whose source changed.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printAvatarUsage prints usage for the avatar command.
func printAvatarUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chathtml avatar --role <character|me> <image> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Install a thumbnail of image as the avatar shown in cai-chat mode.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --role <s>            Avatar role: character, me")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "readable":
		printReadableUsage(env.Stdout)
	case "thread":
		printThreadUsage(env.Stdout)
	case "thumbnail":
		printThumbnailUsage(env.Stdout)
	case "avatar":
		printAvatarUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chathtml version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chathtml help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
