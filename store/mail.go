package store

import (
	"context"

	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMailSettings returns the deployment's SMTP settings, or nil if none
// are configured yet.
func (db *DB) GetMailSettings(ctx context.Context) (*models.MailSettings, error) {
	var settings models.MailSettings
	err := db.MailSettingsCol().FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertMailSettings creates or replaces the single SMTP settings document.
func (db *DB) UpsertMailSettings(ctx context.Context, settings *models.MailSettings) error {
	set := bson.M{
		"host":     settings.Host,
		"port":     settings.Port,
		"username": settings.Username,
		"password": settings.Password,
		"from":     settings.From,
	}
	opts := options.Update().SetUpsert(true)
	_, err := db.MailSettingsCol().UpdateOne(ctx, bson.M{}, bson.M{"$set": set}, opts)
	return err
}

// InsertMailLog records an outgoing email.
func (db *DB) InsertMailLog(ctx context.Context, entry *models.MailLog) error {
	_, err := db.MailLogs().InsertOne(ctx, entry, options.InsertOne())
	return err
}
