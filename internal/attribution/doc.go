// Package attribution joins catalog titles against classified award sets.
//
// Every catalog row receives one boolean flag per (source, category, outcome)
// combination the award sources track, named like
// "oscar_best_picture_winner". Two kinds of derived flag follow: has_<source>
// is the OR of that source's winner flags (nominations never count as an
// award) and has_any_award is the OR of every has_<source>.
//
// Attribution is a pure function of the normalized title and the sets, so it
// is independent across rows, order-independent and idempotent. The engine
// never mutates the catalog or the award sets it is given. Rows whose title
// normalizes to the empty key match nothing.
package attribution
