package redis

import (
	"fmt"

	"github.com/gridspace-io/gridspace/internal/model"
)

// Key prefix for all gridspace data
const keyPrefix = "gridspace"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:username:%s", keyPrefix, username)
}

// spaceKey returns the Redis key for a Space
func spaceKey(id model.SpaceID) string {
	return fmt.Sprintf("%s:space:%s", keyPrefix, id)
}

// creatorSpacesKey returns the Redis key of the set of spaces a user created
func creatorSpacesKey(creatorID model.UserID) string {
	return fmt.Sprintf("%s:creator_spaces:%s", keyPrefix, creatorID)
}

// spaceElementKey returns the Redis key for a SpaceElement
func spaceElementKey(id model.SpaceElementID) string {
	return fmt.Sprintf("%s:space_element:%s", keyPrefix, id)
}

// spaceElementsKey returns the Redis key of the set of elements in a space
func spaceElementsKey(spaceID model.SpaceID) string {
	return fmt.Sprintf("%s:space_elements:%s", keyPrefix, spaceID)
}

// elementKey returns the Redis key for an Element
func elementKey(id model.ElementID) string {
	return fmt.Sprintf("%s:element:%s", keyPrefix, id)
}

// elementsKey returns the Redis key of the set of all element IDs
func elementsKey() string {
	return fmt.Sprintf("%s:elements", keyPrefix)
}

// avatarKey returns the Redis key for an Avatar
func avatarKey(id model.AvatarID) string {
	return fmt.Sprintf("%s:avatar:%s", keyPrefix, id)
}

// avatarsKey returns the Redis key of the set of all avatar IDs
func avatarsKey() string {
	return fmt.Sprintf("%s:avatars", keyPrefix)
}

// mapKey returns the Redis key for a GameMap
func mapKey(id model.MapID) string {
	return fmt.Sprintf("%s:map:%s", keyPrefix, id)
}

// mapsKey returns the Redis key of the set of all map IDs
func mapsKey() string {
	return fmt.Sprintf("%s:maps", keyPrefix)
}
