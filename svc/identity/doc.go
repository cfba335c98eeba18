// Package identity resolves a user id to an email address and a greeting name.
//
// Two stores are consulted in order: the application's public.users table
// (PostgresStore) and the Supabase auth admin API (GoTrueStore). The first
// record with a non-empty email wins. FirstName then derives a best-effort
// first name from the resolved Identity.
package identity
