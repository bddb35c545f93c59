package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MailSettings holds the SMTP account used for outgoing notifications
// (e.g. welcome emails to newly provisioned teachers). A single document
// exists per deployment; Password is AES-GCM encrypted at rest when an
// encryption key is configured.
type MailSettings struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Host     string             `bson:"host" json:"host"`
	Port     int                `bson:"port" json:"port"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"password"`
	From     string             `bson:"from" json:"from"`
}

// MailLog records an outgoing email.
type MailLog struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ToEmail string             `bson:"toEmail" json:"toEmail"`
	Subject string             `bson:"subject" json:"subject"`
	SentAt  time.Time          `bson:"sentAt" json:"sentAt"`
}
