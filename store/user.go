package store

import (
	"context"

	"github.com/sameersharma62616/edyucationn/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.SavedLectures == nil {
		user.SavedLectures = []primitive.ObjectID{}
	}
	res, err := db.Users().InsertOne(ctx, user, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Teachers returns all users with role teacher, name and email only.
func (db *DB) Teachers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "email": 1, "role": 1}).
		SetSort(bson.M{"name": 1})
	cur, err := db.Users().Find(ctx, bson.M{"role": models.RoleTeacher}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var teachers []models.User
	if err := cur.All(ctx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// SearchTeachers matches teachers whose name or email contains keyword,
// case-insensitive.
func (db *DB) SearchTeachers(ctx context.Context, keyword string) ([]models.User, error) {
	regex := primitive.Regex{Pattern: keyword, Options: "i"}
	filter := bson.M{
		"role": models.RoleTeacher,
		"$or": []bson.M{
			{"name": regex},
			{"email": regex},
		},
	}
	cur, err := db.Users().Find(ctx, filter, options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var teachers []models.User
	if err := cur.All(ctx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// UserNamesByIDs resolves display names for a batch of user ids in one query.
func (db *DB) UserNamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	cur, err := db.Users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// SetLectureSaved adds or removes a lecture from the user's saved list
// with a single atomic update, avoiding whole-document write-back races.
func (db *DB) SetLectureSaved(ctx context.Context, userID, lectureID primitive.ObjectID, saved bool) error {
	update := bson.M{"$pull": bson.M{"savedLectures": lectureID}}
	if saved {
		update = bson.M{"$addToSet": bson.M{"savedLectures": lectureID}}
	}
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

func (db *DB) UpdateUserCredentials(ctx context.Context, id primitive.ObjectID, email *string, hashedPassword *string) error {
	updates := bson.M{}
	if email != nil {
		updates["email"] = *email
	}
	if hashedPassword != nil {
		updates["password"] = *hashedPassword
	}
	if len(updates) == 0 {
		return nil
	}
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	return err
}

func (db *DB) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Users().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
