package adapter

import "context"

type noopInviter struct{}

func (noopInviter) Invite(context.Context, string) error { return nil }

type noopMailingList struct{}

func (noopMailingList) Subscribe(context.Context, Subscriber) error { return nil }
