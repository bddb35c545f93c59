package store

import (
	"context"
	"time"

	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertLecture(ctx context.Context, lecture *models.Lecture) (primitive.ObjectID, error) {
	if lecture.Likes == nil {
		lecture.Likes = []primitive.ObjectID{}
	}
	if lecture.Comments == nil {
		lecture.Comments = []models.Comment{}
	}
	res, err := db.Lectures().InsertOne(ctx, lecture, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) AllLectures(ctx context.Context) ([]models.Lecture, error) {
	cur, err := db.Lectures().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var lectures []models.Lecture
	if err := cur.All(ctx, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

func (db *DB) LecturesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Lecture, error) {
	cur, err := db.Lectures().Find(ctx, bson.M{"createdBy": ownerID}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var lectures []models.Lecture
	if err := cur.All(ctx, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

func (db *DB) LecturesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Lecture, error) {
	if len(ids) == 0 {
		return []models.Lecture{}, nil
	}
	cur, err := db.Lectures().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var lectures []models.Lecture
	if err := cur.All(ctx, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

func (db *DB) LectureByID(ctx context.Context, id primitive.ObjectID) (*models.Lecture, error) {
	var lecture models.Lecture
	err := db.Lectures().FindOne(ctx, bson.M{"_id": id}).Decode(&lecture)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (db *DB) UpdateLectureContent(ctx context.Context, id primitive.ObjectID, title, subject, description, videoURL string) error {
	update := bson.M{
		"title":       title,
		"subject":     subject,
		"description": description,
		"videoUrl":    videoURL,
		"updatedAt":   time.Now(),
	}
	_, err := db.Lectures().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

// UpdateLectureMedia records an uploaded media object for the lecture.
func (db *DB) UpdateLectureMedia(ctx context.Context, id primitive.ObjectID, mediaKey, videoURL string) error {
	update := bson.M{
		"mediaKey":  mediaKey,
		"videoUrl":  videoURL,
		"updatedAt": time.Now(),
	}
	_, err := db.Lectures().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

// DeleteLecture removes a lecture by ID. Returns the deleted lecture's
// media key (if any) so the caller can clean up storage.
func (db *DB) DeleteLecture(ctx context.Context, id primitive.ObjectID) (mediaKey string, err error) {
	var lecture models.Lecture
	err = db.Lectures().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&lecture)
	if err != nil {
		return "", err
	}
	return lecture.MediaKey, nil
}

// DeleteLecturesByOwner removes every lecture created by ownerID. Part of
// the teacher cascade delete; not transactional with the user delete.
func (db *DB) DeleteLecturesByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := db.Lectures().DeleteMany(ctx, bson.M{"createdBy": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetLectureLiked adds or removes the user from the lecture's likes with a
// single atomic update. $addToSet keeps the set free of duplicates even
// under concurrent toggles.
func (db *DB) SetLectureLiked(ctx context.Context, lectureID, userID primitive.ObjectID, liked bool) error {
	update := bson.M{"$pull": bson.M{"likes": userID}}
	if liked {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	}
	_, err := db.Lectures().UpdateOne(ctx, bson.M{"_id": lectureID}, update)
	return err
}

// AppendComment pushes a comment onto the lecture's comment list,
// preserving insertion order.
func (db *DB) AppendComment(ctx context.Context, lectureID primitive.ObjectID, comment models.Comment) error {
	_, err := db.Lectures().UpdateOne(ctx, bson.M{"_id": lectureID}, bson.M{"$push": bson.M{"comments": comment}})
	return err
}
