package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/jobtrail/jobtrail/internal/apperr"
)

// GetSheetsClient runs the Google account login flow and returns an
// authorized HTTP client for the Sheets and Drive APIs. The app
// credential comes from credentialsFile; the user's session token is
// cached in tokenFile so the browser flow only happens once.
func GetSheetsClient(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeConfigMissing,
			fmt.Sprintf("unable to read client secret file %s", credentialsFile), err)
	}

	// Spreadsheet rows need write access; Drive is only used to search
	// for the spreadsheet by name.
	config, err := google.ConfigFromJSON(b, sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeConfigMissing, "unable to parse client secret file", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}
	return config.Client(ctx, tok), nil
}

// getTokenFromWeb asks the user to authorize in a browser and paste the
// code back.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("\n---------------------------------------------------------\n")
	fmt.Printf("OPEN THIS LINK TO AUTHORIZE GOOGLE SHEETS ACCESS:\n%v\n", authURL)
	fmt.Printf("---------------------------------------------------------\n")
	fmt.Printf("Paste the code here: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeServiceFailed, "exchange authorization code", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
