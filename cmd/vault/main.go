// Command vault is the command-line front of the credential vault.
//
// Usage:
//
//	vault [global flags] <command> [command flags]
//
// Commands:
//
//	add     store a new credential for a user
//	list    list a user's credentials with decrypted values
//	reveal  print (or copy) one credential's secret
//	update  change fields of an existing credential
//	delete  remove a credential and its extra fields
//
// Global flags (database DSN, master key, etc.) are described in the
// internal/config package and may also come from environment variables or a
// JSON config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/avoronin/credvault/internal/config"
	"github.com/avoronin/credvault/internal/logger"
	"github.com/avoronin/credvault/internal/service"
	"github.com/avoronin/credvault/internal/store"
	"github.com/avoronin/credvault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// Global flags are registered by the config package; parsing here makes
	// the subcommand visible before config assembly, so "version" works
	// without a usable config (and regardless of preceding flags).
	flag.Parse()

	args := flag.Args()
	if isVersionCommand(args) {
		printBuildInfo()
		return
	}

	log := logger.NewLogger("credvault")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(storages, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = runCommand(ctx, services.VaultService, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vault %s: %v\n", args[0], err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, vault service.VaultService, command string, args []string) error {
	switch command {
	case "add":
		return runAdd(ctx, vault, args)
	case "list":
		return runList(ctx, vault, args)
	case "reveal":
		return runReveal(ctx, vault, args)
	case "update":
		return runUpdate(ctx, vault, args)
	case "delete":
		return runDelete(ctx, vault, args)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// fieldFlags collects repeated -field name=value pairs.
type fieldFlags []models.ExtraFieldInput

func (f *fieldFlags) String() string {
	names := make([]string, 0, len(*f))
	for _, field := range *f {
		names = append(names, field.FieldName)
	}
	return strings.Join(names, ",")
}

func (f *fieldFlags) Set(value string) error {
	name, fieldValue, found := strings.Cut(value, "=")
	if !found {
		return fmt.Errorf("expected name=value, got %q", value)
	}

	*f = append(*f, models.ExtraFieldInput{FieldName: name, Value: fieldValue})
	return nil
}

func runAdd(ctx context.Context, vault service.VaultService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	userID := fs.Int64("user", 0, "owner user id")
	appName := fs.String("app", "", "application or site name")
	username := fs.String("username", "", "login for the application")
	secret := fs.String("secret", "", "secret value to encrypt and store")
	url := fs.String("url", "", "optional application URL")
	var fields fieldFlags
	fs.Var(&fields, "field", "extra field as name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := models.AddCredentialRequest{
		UserID:      *userID,
		AppName:     *appName,
		Username:    *username,
		Secret:      *secret,
		ExtraFields: fields,
	}
	if *url != "" {
		req.URL = url
	}

	saved, err := vault.AddCredential(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Stored credential %d (%s / %s)", saved.ID, saved.AppName, saved.Username)
	if len(saved.ExtraFields) > 0 {
		fmt.Printf(" with %d extra field(s)", len(saved.ExtraFields))
	}
	fmt.Println()

	return nil
}

func runList(ctx context.Context, vault service.VaultService, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	userID := fs.Int64("user", 0, "owner user id")
	showSecrets := fs.Bool("show-secrets", false, "print decrypted secrets instead of masking them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	credentials, err := vault.GetCredentials(ctx, *userID)
	if err != nil {
		return err
	}

	if len(credentials) == 0 {
		fmt.Println("No credentials stored.")
		return nil
	}

	currentApp := ""
	for _, credential := range credentials {
		if credential.AppName != currentApp {
			currentApp = credential.AppName
			fmt.Printf("%s\n", currentApp)
		}

		switch {
		case credential.DecryptErr != nil:
			fmt.Printf("  [%d] %s: <cannot decrypt: %v>\n", credential.ID, credential.Username, credential.DecryptErr)
		case *showSecrets:
			fmt.Printf("  [%d] %s: %s\n", credential.ID, credential.Username, credential.Secret)
		default:
			fmt.Printf("  [%d] %s: ********\n", credential.ID, credential.Username)
		}

		if credential.URL != nil {
			fmt.Printf("      url: %s\n", *credential.URL)
		}
		for _, field := range credential.ExtraFields {
			if *showSecrets {
				fmt.Printf("      %s: %s\n", field.FieldName, field.Value)
			} else {
				fmt.Printf("      %s: ********\n", field.FieldName)
			}
		}
	}

	return nil
}

func runReveal(ctx context.Context, vault service.VaultService, args []string) error {
	fs := flag.NewFlagSet("reveal", flag.ExitOnError)
	userID := fs.Int64("user", 0, "owner user id")
	credentialID := fs.Int64("id", 0, "credential id")
	copyToClipboard := fs.Bool("copy", false, "copy the secret to the clipboard instead of printing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := vault.RevealCredential(ctx, *userID, *credentialID)
	if err != nil {
		return err
	}

	if *copyToClipboard {
		if err = clipboard.WriteAll(secret); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Println("Secret copied to clipboard.")
		return nil
	}

	fmt.Println(secret)
	return nil
}

func runUpdate(ctx context.Context, vault service.VaultService, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	userID := fs.Int64("user", 0, "owner user id")
	credentialID := fs.Int64("id", 0, "credential id")
	appName := fs.String("app", "", "new application name")
	username := fs.String("username", "", "new login")
	secret := fs.String("secret", "", "new secret value")
	url := fs.String("url", "", "new application URL")
	var fields fieldFlags
	fs.Var(&fields, "field", "extra field as name=value (repeatable, replaces the stored set)")
	clearFields := fs.Bool("clear-fields", false, "remove every extra field")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := models.UpdateCredentialRequest{
		UserID:       *userID,
		CredentialID: *credentialID,
	}

	// Only flags the user actually set become part of the update; an
	// untouched flag keeps the stored value.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "app":
			req.AppName = appName
		case "username":
			req.Username = username
		case "secret":
			req.Secret = secret
		case "url":
			req.URL = url
		}
	})

	if *clearFields {
		req.ExtraFields = []models.ExtraFieldInput{}
	} else if len(fields) > 0 {
		req.ExtraFields = fields
	}

	updated, err := vault.UpdateCredential(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Updated credential %d (%s / %s)\n", updated.ID, updated.AppName, updated.Username)
	return nil
}

func runDelete(ctx context.Context, vault service.VaultService, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	userID := fs.Int64("user", 0, "owner user id")
	credentialID := fs.Int64("id", 0, "credential id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := vault.DeleteCredential(ctx, *userID, *credentialID); err != nil {
		return err
	}

	fmt.Printf("Deleted credential %d\n", *credentialID)
	return nil
}

// isVersionCommand reports whether the parsed positional arguments select
// the version subcommand.
func isVersionCommand(args []string) bool {
	return len(args) > 0 && args[0] == "version"
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: vault [global flags] <add|list|reveal|update|delete|version> [command flags]")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
