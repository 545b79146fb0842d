package docstore

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// matchFilter evaluates the subset of Mongo query operators the experts
// issue against an in-memory document: equality, $regex, $gte/$lte,
// $or/$and (§4.4 candidate lookup by province/category/price-range).
func matchFilter(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		switch key {
		case "$or":
			clauses, ok := cond.([]bson.M)
			if !ok {
				continue
			}
			matched := false
			for _, clause := range clauses {
				if matchFilter(doc, clause) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		case "$and":
			clauses, ok := cond.([]bson.M)
			if !ok {
				continue
			}
			for _, clause := range clauses {
				if !matchFilter(doc, clause) {
					return false
				}
			}
		default:
			if !matchField(doc[key], cond) {
				return false
			}
		}
	}
	return true
}

func matchField(value, cond any) bool {
	switch c := cond.(type) {
	case bson.M:
		for op, arg := range c {
			switch op {
			case "$regex":
				pattern, _ := arg.(string)
				re, err := regexp.Compile("(?i)" + pattern)
				if err != nil {
					return false
				}
				s, _ := value.(string)
				if !re.MatchString(s) {
					return false
				}
			case "$gte":
				if toFloat(value) < toFloat(arg) {
					return false
				}
			case "$lte":
				if toFloat(value) > toFloat(arg) {
					return false
				}
			case "$in":
				list, _ := arg.([]string)
				found := false
				s, _ := value.(string)
				for _, v := range list {
					if strings.EqualFold(v, s) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			case "$ne":
				if value == arg {
					return false
				}
			}
		}
		return true
	default:
		return value == cond
	}
}
