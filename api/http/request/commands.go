package request

import "github.com/flashdeck/backend/pkg/validate"

// Operation names accepted by the three endpoints.
const (
	TypeAuthenticate = "authenticate"
	TypeCheck        = "check"
	TypeLogout       = "logout"

	TypeGetMyProfile = "get_my_profile"
	TypeGetUser      = "get_user"
	TypeCreateUser   = "create_user"
	TypeUpdateUser   = "update_user"
	TypeDeleteUser   = "delete_user"

	TypeGetStacksByOwnerID = "get_stacks_by_owner_id"
	TypeGetStackByID       = "get_stack_by_id"
	TypeGetCardsByStackID  = "get_cards_by_stack_id"
	TypeGetCardByID        = "get_card_by_id"
	TypeCreateStack        = "create_stack"
	TypeCreateCard         = "create_card"
	TypeUpdateStack        = "update_stack"
	TypeUpdateCard         = "update_card"
	TypeDeleteStack        = "delete_stack"
	TypeDeleteCard         = "delete_card"
)

// Reusable field declarations. Identifier fields are plain strings here;
// handlers decide how an unparsable id degrades (empty result on reads,
// unauthorized on writes).
var (
	fieldEmail    = Field{Name: "email", Validate: validate.Email}
	fieldPassword = Field{Name: "password", Validate: validate.Password}
	fieldUsername = Field{Name: "username", Validate: validate.Username}
	fieldCountry  = Field{Name: "country", Validate: validate.CountryCode}

	fieldUniqueID = Field{Name: "unique_id"}
	fieldStackID  = Field{Name: "stack_id"}

	fieldStackName  = Field{Name: "name", Validate: validate.StackName}
	fieldTags       = Field{Name: "tags", Normalize: validate.NormalizeTags, Validate: validate.Tags}
	fieldVisibility = Field{Name: "visibility", Kind: KindBool}
	fieldFrontside  = Field{Name: "frontside", Validate: validate.CardSide}
	fieldBackside   = Field{Name: "backside", Validate: validate.CardSide}
)

// --- auth endpoint

// Authenticate carries validated login credentials.
type Authenticate struct {
	Email    string
	Password string
}

var authenticateManifest = Manifest{
	Required: []Field{fieldEmail, fieldPassword},
}

func ParseAuthenticate(content map[string]any) (Authenticate, error) {
	v, err := authenticateManifest.Build(content)
	if err != nil {
		return Authenticate{}, err
	}
	return Authenticate{Email: v.String("email"), Password: v.String("password")}, nil
}

// --- users endpoint

// UserQuery identifies a profile to look up, by id or by username.
type UserQuery struct {
	UniqueID *string
	Username *string
}

var userQueryManifest = Manifest{
	Optional: []Field{fieldUniqueID, {Name: "username"}},
}

func ParseUserQuery(content map[string]any) (UserQuery, error) {
	v, err := userQueryManifest.Build(content)
	if err != nil {
		return UserQuery{}, err
	}
	return UserQuery{UniqueID: v.StringOpt("unique_id"), Username: v.StringOpt("username")}, nil
}

// CreateUser carries validated registration fields.
type CreateUser struct {
	Email    string
	Username string
	Password string
	Country  string
}

var createUserManifest = Manifest{
	Required: []Field{fieldEmail, fieldUsername, fieldPassword, fieldCountry},
}

func ParseCreateUser(content map[string]any) (CreateUser, error) {
	v, err := createUserManifest.Build(content)
	if err != nil {
		return CreateUser{}, err
	}
	return CreateUser{
		Email:    v.String("email"),
		Username: v.String("username"),
		Password: v.String("password"),
		Country:  v.String("country"),
	}, nil
}

// UpdateUser carries validated optional profile changes. unique_id and
// date_of_registration are immutable and absent from the manifest, so
// their presence rejects the request.
type UpdateUser struct {
	Email    *string
	Username *string
	Password *string
	Country  *string
}

var updateUserManifest = Manifest{
	Optional: []Field{fieldEmail, fieldUsername, fieldPassword, fieldCountry},
}

func ParseUpdateUser(content map[string]any) (UpdateUser, error) {
	v, err := updateUserManifest.Build(content)
	if err != nil {
		return UpdateUser{}, err
	}
	return UpdateUser{
		Email:    v.StringOpt("email"),
		Username: v.StringOpt("username"),
		Password: v.StringOpt("password"),
		Country:  v.StringOpt("country"),
	}, nil
}

// DeleteUser carries the password confirmation for account deletion.
type DeleteUser struct {
	Password string
}

var deleteUserManifest = Manifest{
	Required: []Field{fieldPassword},
}

func ParseDeleteUser(content map[string]any) (DeleteUser, error) {
	v, err := deleteUserManifest.Build(content)
	if err != nil {
		return DeleteUser{}, err
	}
	return DeleteUser{Password: v.String("password")}, nil
}

// --- cards endpoint

// ByID addresses a single resource (or an owner, for the stacks listing).
type ByID struct {
	UniqueID string
}

var byIDManifest = Manifest{
	Required: []Field{fieldUniqueID},
}

func ParseByID(content map[string]any) (ByID, error) {
	v, err := byIDManifest.Build(content)
	if err != nil {
		return ByID{}, err
	}
	return ByID{UniqueID: v.String("unique_id")}, nil
}

// CreateStack carries validated stack creation fields; Tags is already
// normalized.
type CreateStack struct {
	Name       string
	Tags       string
	Visibility bool
}

var createStackManifest = Manifest{
	Required: []Field{fieldStackName, fieldTags, fieldVisibility},
}

func ParseCreateStack(content map[string]any) (CreateStack, error) {
	v, err := createStackManifest.Build(content)
	if err != nil {
		return CreateStack{}, err
	}
	return CreateStack{
		Name:       v.String("name"),
		Tags:       v.String("tags"),
		Visibility: v.Bool("visibility"),
	}, nil
}

// CreateCard carries validated card creation fields.
type CreateCard struct {
	StackID   string
	Frontside string
	Backside  string
}

var createCardManifest = Manifest{
	Required: []Field{fieldStackID, fieldFrontside, fieldBackside},
}

func ParseCreateCard(content map[string]any) (CreateCard, error) {
	v, err := createCardManifest.Build(content)
	if err != nil {
		return CreateCard{}, err
	}
	return CreateCard{
		StackID:   v.String("stack_id"),
		Frontside: v.String("frontside"),
		Backside:  v.String("backside"),
	}, nil
}

// UpdateStack carries validated optional stack changes. Card fields and
// stack_id are not in the manifest: their presence rejects the request.
type UpdateStack struct {
	UniqueID   string
	Name       *string
	Tags       *string
	Visibility *bool
}

var updateStackManifest = Manifest{
	Required: []Field{fieldUniqueID},
	Optional: []Field{fieldStackName, fieldTags, fieldVisibility},
}

func ParseUpdateStack(content map[string]any) (UpdateStack, error) {
	v, err := updateStackManifest.Build(content)
	if err != nil {
		return UpdateStack{}, err
	}
	return UpdateStack{
		UniqueID:   v.String("unique_id"),
		Name:       v.StringOpt("name"),
		Tags:       v.StringOpt("tags"),
		Visibility: v.BoolOpt("visibility"),
	}, nil
}

// UpdateCard carries validated optional card changes. Stack fields are not
// in the manifest: their presence rejects the request.
type UpdateCard struct {
	UniqueID  string
	Frontside *string
	Backside  *string
}

var updateCardManifest = Manifest{
	Required: []Field{fieldUniqueID},
	Optional: []Field{fieldFrontside, fieldBackside},
}

func ParseUpdateCard(content map[string]any) (UpdateCard, error) {
	v, err := updateCardManifest.Build(content)
	if err != nil {
		return UpdateCard{}, err
	}
	return UpdateCard{
		UniqueID:  v.String("unique_id"),
		Frontside: v.StringOpt("frontside"),
		Backside:  v.StringOpt("backside"),
	}, nil
}
