package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

const (
	// ClientSecretsFile holds the OAuth client_id and client_secret of the
	// Todoist app integration, placed under the config directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile is where the obtained access token is stored.
	TokenFile = "token.json"

	// LocalhostAuthPort is the port the local web server listens on to
	// capture the OAuth redirect. Must match the app's redirect URI.
	LocalhostAuthPort = "6789"

	xdgAppName = "taskport"
)

// todoistEndpoint is Todoist's OAuth2 endpoint pair.
var todoistEndpoint = oauth2.Endpoint{
	AuthURL:  "https://todoist.com/oauth/authorize",
	TokenURL: "https://todoist.com/oauth/access_token",
}

type clientSecrets struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// GetConfig creates an oauth2.Config from the client secrets file.
func GetConfig() (*oauth2.Config, error) {
	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return nil, err
	}

	clientSecretsFile := filepath.Join(xdgConfigBase, ClientSecretsFile)
	b, err := os.ReadFile(clientSecretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", clientSecretsFile, err)
	}

	var secrets clientSecrets
	if err := json.Unmarshal(b, &secrets); err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	if secrets.ClientID == "" || secrets.ClientSecret == "" {
		return nil, fmt.Errorf("client secret file %s is missing client_id or client_secret", clientSecretsFile)
	}

	return &oauth2.Config{
		ClientID:     secrets.ClientID,
		ClientSecret: secrets.ClientSecret,
		Endpoint:     todoistEndpoint,
		RedirectURL:  fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort),
		Scopes:       []string{"data:read_write"},
	}, nil
}

// Token returns the stored API token, running the web authorization flow
// first if no token file exists. Todoist access tokens do not expire, so no
// refresh handling is needed.
func Token(ctx context.Context) (string, error) {
	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return "", err
	}

	tokenFile := filepath.Join(xdgConfigBase, TokenFile)
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		log.Printf("No existing token found at %s. Initiating web authorization flow...", tokenFile)
		tok, err = Authenticate(ctx)
		if err != nil {
			return "", err
		}
	}
	return tok.AccessToken, nil
}

// Authenticate runs the full authorization flow and saves the token.
func Authenticate(ctx context.Context) (*oauth2.Token, error) {
	config, err := GetConfig()
	if err != nil {
		return nil, err
	}

	tok, err := getTokenFromWeb(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to get token from web: %w", err)
	}

	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return nil, err
	}
	saveToken(filepath.Join(xdgConfigBase, TokenFile), tok)
	return tok, nil
}

// getTokenFromWeb initiates the OAuth 2.0 authorization code flow via a
// local web server that captures the redirect.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		log.Printf("Local server listening on %s for OAuth2 redirect...", config.RedirectURL)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	authURL := config.AuthCodeURL("state-token")
	fmt.Printf("Please open the following URL in your browser to authorize taskport:\n%s\n", authURL)
	log.Println("Waiting for authorization code...")

	select {
	case authCode := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := config.Exchange(exchangeCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Todoist: %w", err)
		}
		server.Shutdown(exchangeCtx)
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		server.Shutdown(context.Background())
		return nil, fmt.Errorf("authorization timed out. Please try again")
	}
}

// tokenFromFile reads an oauth2.Token from a JSON file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

// saveToken saves an oauth2.Token to a JSON file.
func saveToken(path string, token *oauth2.Token) {
	fmt.Printf("Saving authentication token to: %s\n", path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		log.Printf("Warning: Could not create token directory %s: %v", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // 0600: read/write for owner only
	if err != nil {
		log.Fatalf("Unable to cache OAuth token to %s: %v", path, err)
	}
	defer f.Close()
	json.NewEncoder(f).Encode(token)
}

func GetXdgHome() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}
