package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-chathtml"
	"github.com/alnah/go-chathtml/internal/hints"
)

// runThumbnail prints the cached thumbnail path of each image argument.
func runThumbnail(args []string, env *Environment) error {
	flags, positional, err := parseCommonFlags("thumbnail", printThumbnailUsage, args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: at least one image required", ErrNoInput)
	}

	s, err := setup(flags, env)
	if err != nil {
		return err
	}

	for _, path := range positional {
		out, err := s.renderer.Thumbnail(path)
		if err != nil {
			return imageError(err, s.renderer.CacheDir())
		}
		fmt.Fprintln(env.Stdout, out)
	}
	return nil
}

// runAvatar installs an image as the character or user avatar.
func runAvatar(args []string, env *Environment) error {
	flags, positional, err := parseAvatarFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.role == "" {
		return fmt.Errorf("%w: --role is required (character, me)", ErrMissingArgument)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: exactly one image required", ErrMissingArgument)
	}

	s, err := setup(&flags.common, env)
	if err != nil {
		return err
	}

	out, err := s.renderer.InstallAvatar(positional[0], chathtml.AvatarRole(flags.role))
	if err != nil {
		return imageError(err, s.renderer.CacheDir())
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Installed %s\n", out)
	}
	return nil
}

// imageError attaches the hint matching err.
func imageError(err error, cacheDir string) error {
	switch {
	case errors.Is(err, chathtml.ErrCacheDir), errors.Is(err, chathtml.ErrWriteThumbnail):
		return fmt.Errorf("%w%s", err, hints.ForCacheDir(cacheDir))
	case errors.Is(err, chathtml.ErrSourceImage):
		return fmt.Errorf("%w%s", err, hints.ForImage())
	default:
		return err
	}
}
