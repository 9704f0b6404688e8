package model

// LoyaltyProgram is one frequent-flyer program membership on an account.
type LoyaltyProgram struct {
	ProgramCode  string  `json:"programCode"`
	PointBalance float64 `json:"pointBalance"`
}

// AccountDetail carries the membership facets the fare workflow branches on.
type AccountDetail struct {
	IsClub              bool   `json:"isClub"`
	IsCardHolder        bool   `json:"isCardHolder"`
	ProgramLevelCode    string `json:"programLevelCode,omitempty"`
	RedemptionFeeWaived bool   `json:"redemptionFeeWaived,omitempty"`
}

// User is the active account.
type User struct {
	ID       string           `json:"id"`
	Email    string           `json:"email,omitempty"`
	Programs []LoyaltyProgram `json:"programs,omitempty"`
	Account  AccountDetail    `json:"account"`
}

// PointBalance sums the point balances of the user's memberships in the
// given program.
func (u *User) PointBalance(programCode string) float64 {
	if u == nil {
		return 0
	}
	var total float64
	for _, p := range u.Programs {
		if p.ProgramCode == programCode {
			total += p.PointBalance
		}
	}
	return total
}

// IsClubMember reports club membership, tolerating a nil user.
func (u *User) IsClubMember() bool {
	return u != nil && u.Account.IsClub
}

// IsCardHolder reports card-holder status, tolerating a nil user.
func (u *User) IsCardHolder() bool {
	return u != nil && u.Account.IsCardHolder
}
