package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restrepo/autocvlac/internal/browser"
	"github.com/restrepo/autocvlac/internal/container"
	"github.com/restrepo/autocvlac/internal/secrets"
	"github.com/restrepo/autocvlac/internal/session"
	"github.com/restrepo/autocvlac/pkg/types"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify CvLAC credentials by authenticating a browser session",
	Long: `Login opens the CvLAC login page in a guided browser, fills the
identity fields, submits, and reports whether the registry accepted the
credentials. The password is never a flag: set AUTOCVLAC_PASSWORD, the
password config key, or a .secrets/cvlac-password file.`,
	RunE: runLogin,
}

func init() {
	addCredentialFlags(loginCmd)
	addBrowserFlags(loginCmd)
	rootCmd.AddCommand(loginCmd)
}

// addCredentialFlags registers the identity flags shared by login and
// publish.
func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().String("nationality", "", "nationality exactly as listed in the CvLAC selector")
	cmd.Flags().String("name", "", "full name as registered in CvLAC")
	cmd.Flags().String("document", "", "identity document number (domestic nationalities)")
	cmd.Flags().String("birth-country", "", "birth country (foreign-other nationality)")
	cmd.Flags().String("birth-date", "", "birth date, e.g. 1980-05-17 (foreign-other nationality)")
}

// addBrowserFlags registers the browser-surface flags shared by login and
// publish.
func addBrowserFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-headless", false, "show the browser window")
	cmd.Flags().String("remote-url", "", "DevTools URL of an already-running browser")
	cmd.Flags().Bool("container", false, "start a headless browser container for the session")
	cmd.Flags().Int("container-port", 9222, "host port for the browser container's DevTools endpoint")
}

// credentialsFrom assembles registry credentials from flags, config, and
// secrets. The password is deliberately not a flag.
func credentialsFrom(cmd *cobra.Command) session.Credentials {
	nationality, _ := cmd.Flags().GetString("nationality")
	name, _ := cmd.Flags().GetString("name")
	document, _ := cmd.Flags().GetString("document")
	birthCountry, _ := cmd.Flags().GetString("birth-country")
	birthDate, _ := cmd.Flags().GetString("birth-date")

	if nationality == "" {
		nationality = viper.GetString("nationality")
	}
	if name == "" {
		name = viper.GetString("name")
	}
	if document == "" {
		document = viper.GetString("document")
	}
	if birthCountry == "" {
		birthCountry = viper.GetString("birth_country")
	}
	if birthDate == "" {
		birthDate = viper.GetString("birth_date")
	}

	return session.Credentials{
		Nationality:  nationality,
		FullName:     name,
		Document:     document,
		Password:     secrets.Get(loadedSecrets, secrets.KeyRegistryPassword, viper.GetString("password")),
		BirthCountry: birthCountry,
		BirthDate:    birthDate,
	}
}

// registryConfig assembles the browser-facing registry settings.
func registryConfig(cmd *cobra.Command) types.RegistryConfig {
	noHeadless, _ := cmd.Flags().GetBool("no-headless")
	remoteURL, _ := cmd.Flags().GetString("remote-url")
	if remoteURL == "" {
		remoteURL = viper.GetString("registry.remote_url")
	}

	cfg := types.RegistryConfig{
		LoginURL:    viper.GetString("registry.login_url"),
		ArticleURL:  viper.GetString("registry.article_url"),
		Headless:    !noHeadless,
		RemoteURL:   remoteURL,
		SettleDelay: viper.GetDuration("registry.settle_delay"),
		WaitTimeout: viper.GetDuration("registry.wait_timeout"),
	}
	cfg.Defaults()
	return cfg
}

// browserFactory returns a driver factory for the configured browser
// surface, plus a cleanup for any container it started. With --container it
// launches a headless Chrome container and points the factory at its
// DevTools endpoint.
func browserFactory(cmd *cobra.Command, cfg *types.RegistryConfig) (browser.Factory, func(), error) {
	useContainer, _ := cmd.Flags().GetBool("container")
	if !useContainer {
		return browser.ChromeFactory(*cfg), func() {}, nil
	}

	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, nil, err
	}
	if err := rt.ImageExists(container.DefaultBrowserImage); err != nil {
		return nil, nil, fmt.Errorf("pull %s first: %w", container.DefaultBrowserImage, err)
	}

	port, _ := cmd.Flags().GetInt("container-port")
	id, err := rt.StartBrowser(container.DefaultBrowserImage, port)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(os.Stderr, "Started %s browser container %.12s on port %d\n", rt.Name(), id, port)

	cfg.RemoteURL = container.DevToolsURL(port)
	cleanup := func() {
		if err := rt.Stop(id); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	return browser.ChromeFactory(*cfg), cleanup, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg := registryConfig(cmd)
	factory, cleanup, err := browserFactory(cmd, &cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sess, res := session.Authenticate(cmd.Context(), factory, credentialsFrom(cmd), cfg)
	if !res.OK() {
		return fmt.Errorf("login failed: %s", res.Message)
	}
	defer sess.Close()

	fmt.Println("login succeeded; session is active")
	return nil
}
