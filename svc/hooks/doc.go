// Package hooks turns Supabase database webhooks into calls against the
// email dispatch endpoint.
//
// Three receivers are mounted under /hooks: welcome (INSERT on users),
// billing (INSERT on subscriptions) and cancellation (UPDATE on
// subscriptions that cancels it). Any other event is acknowledged with a
// neutral {"message": ...} response. Dispatch replies are relayed back to the
// database webhook caller.
package hooks
