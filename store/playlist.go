package store

import (
	"context"

	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertPlaylist(ctx context.Context, playlist *models.Playlist) (primitive.ObjectID, error) {
	if playlist.Lectures == nil {
		playlist.Lectures = []primitive.ObjectID{}
	}
	res, err := db.Playlists().InsertOne(ctx, playlist, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) PlaylistsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	cur, err := db.Playlists().Find(ctx, bson.M{"createdBy": ownerID}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var playlists []models.Playlist
	if err := cur.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// UpdatePlaylistLectures replaces the playlist's lecture list. The filter
// is scoped to the owner, so a non-owner's update matches nothing and the
// playlist's existence is not disclosed.
func (db *DB) UpdatePlaylistLectures(ctx context.Context, id, ownerID primitive.ObjectID, lectureIDs []primitive.ObjectID) (bool, error) {
	if lectureIDs == nil {
		lectureIDs = []primitive.ObjectID{}
	}
	res, err := db.Playlists().UpdateOne(ctx,
		bson.M{"_id": id, "createdBy": ownerID},
		bson.M{"$set": bson.M{"lectures": lectureIDs}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// DeletePlaylist removes the playlist, scoped to the owner.
func (db *DB) DeletePlaylist(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	res, err := db.Playlists().DeleteOne(ctx, bson.M{"_id": id, "createdBy": ownerID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
