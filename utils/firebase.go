// utils/firebase.go
package utils

import (
	"context"

	"femicare/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Push is an
// optional channel; with no credentials configured the client stays nil and
// push sends are skipped.
func FirebaseInit() {
	credsFile := config.AppConfig.FirebaseCredentialsFile
	if credsFile == "" {
		GetLogger().Info("firebase: no credentials configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(credsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		GetLogger().Sugar().Errorf("firebase: error initializing app: %v", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		GetLogger().Sugar().Errorf("firebase: error getting Messaging client: %v", err)
		return
	}

	FCMClient = client
}
