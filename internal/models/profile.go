package models

// Profile is embedded in User. Every field is optional and defaults to "".
type Profile struct {
	Phone        string `bson:"phone" json:"phone"`
	Bio          string `bson:"bio" json:"bio"`
	TargetRole   string `bson:"targetRole" json:"targetRole"`
	Experience   string `bson:"experience" json:"experience"`
	Location     string `bson:"location" json:"location"`
	LinkedIn     string `bson:"linkedin" json:"linkedin"`
	GitHub       string `bson:"github" json:"github"`
	ProfileImage string `bson:"profileImage" json:"profileImage"`
	BannerImage  string `bson:"bannerImage" json:"bannerImage"`
}

// ProfileView is the read model served by get-profile.
type ProfileView struct {
	Username string       `json:"username"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Avatar   string       `json:"avatar"`
	Provider AuthProvider `json:"provider"`
	Profile
}

// ProfileUpdate is a partial profile: nil fields are left untouched.
type ProfileUpdate struct {
	Phone        *string `json:"phone,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	TargetRole   *string `json:"targetRole,omitempty"`
	Experience   *string `json:"experience,omitempty"`
	Location     *string `json:"location,omitempty"`
	LinkedIn     *string `json:"linkedin,omitempty"`
	GitHub       *string `json:"github,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	BannerImage  *string `json:"bannerImage,omitempty"`
}

// Fields returns the supplied fields keyed by their stored name.
func (u ProfileUpdate) Fields() map[string]string {
	out := map[string]string{}
	set := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	set("phone", u.Phone)
	set("bio", u.Bio)
	set("targetRole", u.TargetRole)
	set("experience", u.Experience)
	set("location", u.Location)
	set("linkedin", u.LinkedIn)
	set("github", u.GitHub)
	set("profileImage", u.ProfileImage)
	set("bannerImage", u.BannerImage)
	return out
}

// Apply merges the supplied fields into p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.TargetRole != nil {
		p.TargetRole = *u.TargetRole
	}
	if u.Experience != nil {
		p.Experience = *u.Experience
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.LinkedIn != nil {
		p.LinkedIn = *u.LinkedIn
	}
	if u.GitHub != nil {
		p.GitHub = *u.GitHub
	}
	if u.ProfileImage != nil {
		p.ProfileImage = *u.ProfileImage
	}
	if u.BannerImage != nil {
		p.BannerImage = *u.BannerImage
	}
}

func (u ProfileUpdate) IsEmpty() bool { return len(u.Fields()) == 0 }
