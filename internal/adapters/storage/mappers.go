package storage

import (
	"github.com/renato0307/prmonitor/internal/domain"
)

// trackedModelToDomain converts a TrackedPullRequestModel (GORM) to domain.TrackedPullRequest
func trackedModelToDomain(m TrackedPullRequestModel) (domain.TrackedPullRequest, error) {
	state, err := domain.ParsePRState(m.State)
	if err != nil {
		return domain.TrackedPullRequest{}, err
	}

	return domain.TrackedPullRequest{
		AddedAt:   m.AddedAt,
		ClosedAt:  m.ClosedAt,
		Mergeable: domain.MergeableState(m.Mergeable),
		Merged:    m.Merged,
		Number:    m.Number,
		Owner:     m.Owner,
		Repo:      m.Repo,
		State:     state,
		Title:     m.Title,
	}, nil
}

// domainToTrackedModel converts domain.TrackedPullRequest to TrackedPullRequestModel (GORM)
func domainToTrackedModel(pr domain.TrackedPullRequest) TrackedPullRequestModel {
	return TrackedPullRequestModel{
		AddedAt:   pr.AddedAt,
		ClosedAt:  pr.ClosedAt,
		Mergeable: string(pr.Mergeable),
		Merged:    pr.Merged,
		Number:    pr.Number,
		Owner:     pr.Owner,
		Repo:      pr.Repo,
		State:     string(pr.State),
		Title:     pr.Title,
	}
}

// settingsModelToDomain merges the settings and credential rows
func settingsModelToDomain(m SettingsModel, credential string) domain.Settings {
	return domain.Settings{
		Credential:             credential,
		NotificationsEnabled:   m.NotificationsEnabled,
		RefreshIntervalSeconds: m.RefreshIntervalSeconds,
		Theme:                  domain.Theme(m.Theme),
	}
}

// domainToSettingsModel converts domain.Settings to SettingsModel (GORM), without the credential
func domainToSettingsModel(s domain.Settings) SettingsModel {
	return SettingsModel{
		ID:                     singletonID,
		NotificationsEnabled:   s.NotificationsEnabled,
		RefreshIntervalSeconds: s.RefreshIntervalSeconds,
		Theme:                  string(s.Theme),
	}
}
