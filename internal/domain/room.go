package domain

// A room identifier is one of:
//   - a class/session id,
//   - a user id (personal room, reaches all of that user's devices),
//   - "community-<id>" for community chat rooms.
const communityRoomPrefix = "community-"

// CommunityRoom builds the room id for a community chat room.
func CommunityRoom(communityID string) string {
	return communityRoomPrefix + communityID
}
