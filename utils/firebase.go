package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	firebaseApp    *firebase.App
	firebaseClient *messaging.Client
	firebaseOnce   sync.Once
	firebaseErr    error
)

// InitFirebase initializes the Firebase Admin SDK and FCM client once.
// A missing credentials file disables push notifications without failing boot.
func InitFirebase() error {
	firebaseOnce.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		projectID := os.Getenv("FCM_PROJECT_ID")

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			firebaseErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}
		if projectID == "" {
			firebaseErr = fmt.Errorf("FCM_PROJECT_ID is required for push notifications")
			return
		}

		app, err := firebase.NewApp(ctx,
			&firebase.Config{ProjectID: projectID},
			option.WithCredentialsFile(credentialsPath),
		)
		if err != nil {
			firebaseErr = fmt.Errorf("firebase init failed: %w", err)
			return
		}

		client, err := app.Messaging(ctx)
		if err != nil {
			firebaseErr = fmt.Errorf("FCM client init failed: %w", err)
			return
		}

		firebaseApp = app
		firebaseClient = client
		log.Println("✅ Firebase initialized for project:", projectID)
	})

	return firebaseErr
}

// FCMClient returns the messaging client, or nil when push is disabled.
func FCMClient() *messaging.Client {
	return firebaseClient
}

// IsFCMEnabled reports whether push notifications can be sent.
func IsFCMEnabled() bool {
	return firebaseClient != nil
}

// GetInitError exposes the reason push is disabled, if any.
func GetInitError() error {
	return firebaseErr
}
