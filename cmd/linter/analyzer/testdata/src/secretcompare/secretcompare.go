package secretcompare

type request struct {
	MasterSecret *string
	Target       string
}

type key struct {
	secret []byte
}

func CompareFields(req request, configured string) bool {
	return *req.MasterSecret == configured // want "MasterSecret compared with ==; use subtle.ConstantTimeCompare"
}

func CompareIdents(ownerSecret, provided string) bool {
	return provided != ownerSecret // want "ownerSecret compared with !=; use subtle.ConstantTimeCompare"
}

func CompareConversion(k key, provided string) bool {
	return string(k.secret) == provided // want "secret compared with ==; use subtle.ConstantTimeCompare"
}

func CompareToken(apiToken string) bool {
	return apiToken == "hard-coded" // want "apiToken compared with ==; use subtle.ConstantTimeCompare"
}

func EmptinessCheck(ownerSecret string) bool {
	return ownerSecret == "" // No want
}

func NonSecret(req request) bool {
	return req.Target == "https://example.org" // No want
}

func NilCheck(req request) bool {
	return req.MasterSecret == nil // No want
}

func Lengths(secret, other string) bool {
	return len(secret) == len(other) // No want
}
